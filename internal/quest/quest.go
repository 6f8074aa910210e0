// Package quest parses the DefaultQuests document dialect — after it has
// been run through internal/nbt's Normalize — into the typed Quest,
// QuestLine, and Settings model.
package quest

import "questgraph/internal/questid"

// Quest is one parsed quest document.
type Quest struct {
	ID         questid.ID
	Properties *Properties
	Tasks      []Task
	Rewards    []Reward

	Prerequisites         []questid.ID
	RequiredPrerequisites []questid.ID
	OptionalPrerequisites []questid.ID
}

// Properties holds a quest or questline's user-facing metadata.
type Properties struct {
	Name string
	Desc string
	Icon *ItemStack

	IsMain            *bool
	IsSilent          *bool
	AutoClaim         *bool
	GlobalShare       *bool
	IsGlobal          *bool
	RepeatRelative    *bool
	Simultaneous      *bool
	PartySingleReward *bool

	LockedProgress *int32
	RepeatTime     *int32

	QuestLogic  string
	TaskLogic   string
	Visibility  string
	SndComplete string
	SndUpdate   string

	Extra map[string]any
}

// ItemStack is a simplified item reference used in tasks, rewards, and
// quest icons.
type ItemStack struct {
	ID      string
	Damage  *int32
	Count   *int32
	OreDict string
	Extra   map[string]any
}

// Task is one quest task entry.
type Task struct {
	Index         int
	TaskID        string
	RequiredItems []ItemStack

	IgnoreNBT    *bool
	PartialMatch *bool
	AutoConsume  *bool
	Consume      *bool
	GroupDetect  *bool

	Options map[string]any
}

// Reward is one quest reward entry.
type Reward struct {
	Index          int
	RewardID       string
	Items          []ItemStack
	Choices        []ItemStack
	IgnoreDisabled *bool
	Extra          map[string]any
}

// QuestLine groups quests for layout/presentation purposes.
type QuestLine struct {
	ID         questid.ID
	Properties *Properties
	Entries    []QuestLineEntry
	Extra      map[string]any
}

// QuestLineEntry positions one quest within a QuestLine's layout.
type QuestLineEntry struct {
	QuestID questid.ID
	X       *int32
	Y       *int32
	SizeX   *int32
	SizeY   *int32
	Extra   map[string]any
}

// Settings holds the DefaultQuests dataset's global settings.
type Settings struct {
	Version string
	Extra   map[string]any
}
