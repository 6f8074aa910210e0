package quest

import (
	"questgraph/internal/nbt"
	"questgraph/internal/qerr"
	"questgraph/internal/questid"
	"questgraph/internal/rawjson"
)

// firstEntryValue returns the value of the first key/value pair of an
// nbt.Object, in decode order. A map[string]any carries no key order, so
// for one it returns whichever entry map iteration yields first.
func firstEntryValue(v any) (any, bool) {
	switch obj := v.(type) {
	case nbt.Object:
		if kv, ok := obj.First(); ok {
			return kv.Value, true
		}
		return nil, false
	case map[string]any:
		for _, val := range obj {
			return val, true
		}
		return nil, false
	default:
		return nil, false
	}
}

// locateProperties implements spec.md's "properties.betterquesting → first
// entry of properties → top-level fallback" precedence for quest and
// questline documents. The second bool reports whether a "properties" key
// was present at all; when it is absent there is no properties block.
func locateProperties(doc any) (any, bool) {
	props, ok := rawjson.Get(doc, "properties")
	if !ok {
		return nil, false
	}
	if bq, ok := rawjson.Get(props, "betterquesting"); ok {
		return bq, true
	}
	if first, ok := firstEntryValue(props); ok {
		return first, true
	}
	return doc, true
}

// locateSettingsInner applies the same precedence used by the database
// loader for the top-level QuestSettings document, which additionally
// recognizes an unwrapped top-level "betterquesting" key.
func locateSettingsInner(doc any) any {
	if props, ok := rawjson.Get(doc, "properties"); ok {
		if bq, ok := rawjson.Get(props, "betterquesting"); ok {
			return bq
		}
		if first, ok := firstEntryValue(props); ok {
			return first
		}
	}
	if bq, ok := rawjson.Get(doc, "betterquesting"); ok {
		return bq
	}
	return doc
}

func optInt32(v any, key string) *int32 {
	n, ok := rawjson.Int32(v, key)
	if !ok {
		return nil
	}
	return &n
}

func optBool(v any, key string) *bool {
	b, ok := rawjson.BoolField(v, key)
	if !ok {
		return nil
	}
	return &b
}

func optString(v any, key string) string {
	s, _ := rawjson.String(v, key)
	return s
}

var propertyKnownKeys = []string{
	"name", "desc", "icon",
	"isMain", "isSilent", "autoClaim", "globalShare", "isGlobal",
	"lockedProgress", "repeatTime", "repeat_relative", "simultaneous",
	"partySingleReward", "questLogic", "taskLogic", "visibility",
	"snd_complete", "snd_update",
}

func parsePropertiesFields(v any) *Properties {
	if v == nil {
		return nil
	}
	p := &Properties{
		Name:              optString(v, "name"),
		Desc:              optString(v, "desc"),
		Icon:              parseItem(mustGet(v, "icon")),
		IsMain:            optBool(v, "isMain"),
		IsSilent:          optBool(v, "isSilent"),
		AutoClaim:         optBool(v, "autoClaim"),
		GlobalShare:       optBool(v, "globalShare"),
		IsGlobal:          optBool(v, "isGlobal"),
		RepeatRelative:    optBool(v, "repeat_relative"),
		Simultaneous:      optBool(v, "simultaneous"),
		PartySingleReward: optBool(v, "partySingleReward"),
		LockedProgress:    optInt32(v, "lockedProgress"),
		RepeatTime:        optInt32(v, "repeatTime"),
		QuestLogic:        optString(v, "questLogic"),
		TaskLogic:         optString(v, "taskLogic"),
		Visibility:        optString(v, "visibility"),
		SndComplete:       optString(v, "snd_complete"),
		SndUpdate:         optString(v, "snd_update"),
		Extra:             rawjson.Extra(v, propertyKnownKeys...),
	}
	return p
}

func mustGet(v any, key string) any {
	val, _ := rawjson.Get(v, key)
	return val
}

// ParseProperties locates and parses the properties block of a quest or
// questline document. Returns (nil, nil) if no properties are present at
// all; returns an InvalidFormat error if a properties block is present but
// lacks the required "name" field.
func ParseProperties(doc any) (*Properties, error) {
	inner, ok := locateProperties(doc)
	if !ok {
		return nil, nil
	}
	p := parsePropertiesFields(inner)
	if p == nil || p.Name == "" {
		return nil, qerr.InvalidFormat("quest properties missing required \"name\" field")
	}
	return p, nil
}

var itemKnownKeys = []string{"id", "Damage", "damage", "Count", "count", "OreDict", "oreDict"}

func parseItem(v any) *ItemStack {
	if v == nil {
		return nil
	}
	id, ok := rawjson.String(v, "id")
	if !ok || id == "" {
		return nil
	}
	damage := optInt32(v, "Damage")
	if damage == nil {
		damage = optInt32(v, "damage")
	}
	count := optInt32(v, "Count")
	if count == nil {
		count = optInt32(v, "count")
	}
	oredict := optString(v, "OreDict")
	if oredict == "" {
		oredict = optString(v, "oreDict")
	}
	return &ItemStack{
		ID:      id,
		Damage:  damage,
		Count:   count,
		OreDict: oredict,
		Extra:   rawjson.Extra(v, itemKnownKeys...),
	}
}

func parseItemList(v any) []ItemStack {
	arr, ok := rawjson.AsSlice(v)
	if !ok {
		return nil
	}
	out := make([]ItemStack, 0, len(arr))
	for _, elem := range arr {
		if item := parseItem(elem); item != nil {
			out = append(out, *item)
		}
	}
	return out
}

var taskKnownKeys = []string{
	"taskID", "taskId", "task_id", "task", "requiredItems",
	"ignoreNBT", "ignore_nbt", "partialMatch", "partial_match",
	"autoConsume", "auto_consume", "consume", "groupDetect", "group_detect",
}

func parseTaskEntry(index int, v any) (Task, bool) {
	taskID, ok := rawjson.String(v, "taskID", "taskId", "task_id", "task")
	if !ok || taskID == "" {
		return Task{}, false
	}
	ignoreNBT := optBool(v, "ignoreNBT")
	if ignoreNBT == nil {
		ignoreNBT = optBool(v, "ignore_nbt")
	}
	partialMatch := optBool(v, "partialMatch")
	if partialMatch == nil {
		partialMatch = optBool(v, "partial_match")
	}
	autoConsume := optBool(v, "autoConsume")
	if autoConsume == nil {
		autoConsume = optBool(v, "auto_consume")
	}
	groupDetect := optBool(v, "groupDetect")
	if groupDetect == nil {
		groupDetect = optBool(v, "group_detect")
	}
	return Task{
		Index:         index,
		TaskID:        taskID,
		RequiredItems: parseItemList(mustGet(v, "requiredItems")),
		IgnoreNBT:     ignoreNBT,
		PartialMatch:  partialMatch,
		AutoConsume:   autoConsume,
		Consume:       optBool(v, "consume"),
		GroupDetect:   groupDetect,
		Options:       rawjson.Extra(v, taskKnownKeys...),
	}, true
}

func parseTasks(v any) []Task {
	if v == nil {
		return nil
	}
	if arr, ok := rawjson.AsSlice(v); ok {
		out := make([]Task, 0, len(arr))
		for i, elem := range arr {
			if t, ok := parseTaskEntry(i, elem); ok {
				out = append(out, t)
			}
		}
		return out
	}
	if t, ok := parseTaskEntry(0, v); ok {
		return []Task{t}
	}
	return nil
}

var rewardKnownKeys = []string{
	"rewardID", "rewardId", "reward_id", "reward",
	"items", "choices", "ignoreDisabled", "ignore_disabled",
}

func parseRewardEntry(index int, v any) (Reward, bool) {
	rewardID, ok := rawjson.String(v, "rewardID", "rewardId", "reward_id", "reward")
	if !ok || rewardID == "" {
		return Reward{}, false
	}
	ignoreDisabled := optBool(v, "ignoreDisabled")
	if ignoreDisabled == nil {
		ignoreDisabled = optBool(v, "ignore_disabled")
	}
	return Reward{
		Index:          index,
		RewardID:       rewardID,
		Items:          parseItemList(mustGet(v, "items")),
		Choices:        parseItemList(mustGet(v, "choices")),
		IgnoreDisabled: ignoreDisabled,
		Extra:          rawjson.Extra(v, rewardKnownKeys...),
	}, true
}

func parseRewards(v any) []Reward {
	if v == nil {
		return nil
	}
	if arr, ok := rawjson.AsSlice(v); ok {
		out := make([]Reward, 0, len(arr))
		for i, elem := range arr {
			if r, ok := parseRewardEntry(i, elem); ok {
				out = append(out, r)
			}
		}
		return out
	}
	if r, ok := parseRewardEntry(0, v); ok {
		return []Reward{r}
	}
	return nil
}

func parseQuestIDRef(v any) (questid.ID, bool) {
	high, _ := rawjson.Int32(v, "questIDHigh")
	low, _ := rawjson.Int32(v, "questIDLow")
	if _, hasHigh := rawjson.Get(v, "questIDHigh"); !hasHigh {
		if _, hasLow := rawjson.Get(v, "questIDLow"); !hasLow {
			return questid.ID(0), false
		}
	}
	return questid.FromParts(high, low), true
}

func parsePrerequisiteList(v any) []questid.ID {
	arr, ok := rawjson.AsSlice(v)
	if !ok {
		return nil
	}
	out := make([]questid.ID, 0, len(arr))
	for _, elem := range arr {
		if id, ok := parseQuestIDRef(elem); ok {
			out = append(out, id)
		}
	}
	return out
}

func dedupeIDs(ids []questid.ID, seen map[uint64]bool) []questid.ID {
	out := make([]questid.ID, 0, len(ids))
	for _, id := range ids {
		if seen[id.AsU64()] {
			continue
		}
		seen[id.AsU64()] = true
		out = append(out, id)
	}
	return out
}

func isOptionalLogic(logic string) bool {
	switch logic {
	case "OR", "ONE_OF", "ANY", "XOR":
		return true
	default:
		return false
	}
}

// ParseQuest parses a single normalized quest document.
func ParseQuest(v any) (*Quest, error) {
	high, _ := rawjson.Int32(v, "questIDHigh")
	low, _ := rawjson.Int32(v, "questIDLow")
	id := questid.FromParts(high, low)

	props, err := ParseProperties(v)
	if err != nil {
		return nil, err
	}

	tasks := parseTasks(mustGet(v, "tasks"))
	rewards := parseRewards(mustGet(v, "rewards"))

	rawRequired := parsePrerequisiteList(mustGet(v, "preRequisites"))
	rawOptional := parsePrerequisiteList(mustGet(v, "optionalPreRequisites"))

	optional := dedupeIDs(rawOptional, map[uint64]bool{})
	optionalSet := map[uint64]bool{}
	for _, id := range optional {
		optionalSet[id.AsU64()] = true
	}
	required := dedupeIDs(rawRequired, optionalSet)

	if len(optional) == 0 {
		logic := ""
		if props != nil {
			logic = upper(props.QuestLogic)
		}
		if isOptionalLogic(logic) {
			optional = required
			required = nil
		}
	}

	prerequisites := append([]questid.ID{}, required...)

	return &Quest{
		ID:                    id,
		Properties:            props,
		Tasks:                 tasks,
		Rewards:               rewards,
		Prerequisites:         prerequisites,
		RequiredPrerequisites: required,
		OptionalPrerequisites: optional,
	}, nil
}

func upper(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}

// ParseQuestLineEntry parses one questline layout entry document.
func ParseQuestLineEntry(v any) (*QuestLineEntry, error) {
	high, _ := rawjson.Int32(v, "questIDHigh")
	low, _ := rawjson.Int32(v, "questIDLow")
	return &QuestLineEntry{
		QuestID: questid.FromParts(high, low),
		X:       optInt32(v, "x"),
		Y:       optInt32(v, "y"),
		SizeX:   optInt32(v, "sizeX"),
		SizeY:   optInt32(v, "sizeY"),
		Extra:   rawjson.Extra(v, "questIDHigh", "questIDLow", "x", "y", "sizeX", "sizeY"),
	}, nil
}

// ParseQuestLineHeader parses a QuestLine.json document into an id and
// properties, leaving Entries empty for the caller to fill in.
func ParseQuestLineHeader(v any) (*QuestLine, error) {
	high, _ := rawjson.Int32(v, "questLineIDHigh")
	low, _ := rawjson.Int32(v, "questLineIDLow")
	props, err := ParseProperties(v)
	if err != nil {
		return nil, err
	}
	return &QuestLine{
		ID:         questid.FromParts(high, low),
		Properties: props,
		Entries:    nil,
		Extra:      rawjson.Extra(v, "questLineIDHigh", "questLineIDLow", "properties"),
	}, nil
}

// ParseSettings parses the optional global QuestSettings document.
func ParseSettings(doc any) (*Settings, error) {
	inner := locateSettingsInner(doc)
	version := optString(inner, "version")
	extra := rawjson.Extra(inner, "version")
	return &Settings{Version: version, Extra: extra}, nil
}
