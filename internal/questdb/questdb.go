// Package questdb walks a DefaultQuests directory tree through a
// datasource.Source and assembles a validated, immutable Database.
package questdb

import (
	"context"
	"sort"
	"strings"

	"questgraph/internal/datasource"
	"questgraph/internal/nbt"
	"questgraph/internal/qerr"
	"questgraph/internal/quest"
	"questgraph/internal/questid"
)

// Database is the fully loaded, cross-referenced DefaultQuests dataset.
type Database struct {
	Settings       *quest.Settings
	Quests         map[questid.ID]*quest.Quest
	QuestLines     map[questid.ID]*quest.QuestLine
	QuestLineOrder []questid.ID
}

const (
	questsDir     = "Quests"
	questLinesDir = "QuestLines"
	settingsJSON  = "QuestSettings.json"
	settingsPlain = "QuestSettings"
	lineHeader    = "QuestLine.json"
)

// Load reads root through src and builds a Database, per the loader steps
// in spec.md §4.4.
func Load(ctx context.Context, root string, src datasource.Source) (*Database, error) {
	isDir, err := src.IsDir(ctx, root)
	if err != nil {
		return nil, qerr.IO(root, err)
	}
	if !isDir {
		return nil, qerr.InvalidFormat("not a directory: %s", root)
	}

	settings, err := loadSettings(ctx, root, src)
	if err != nil {
		return nil, err
	}

	quests, err := loadQuests(ctx, root, src)
	if err != nil {
		return nil, err
	}

	questLines, order, err := loadQuestLines(ctx, root, src)
	if err != nil {
		return nil, err
	}

	if err := validateReferences(questLines, quests); err != nil {
		return nil, err
	}

	return &Database{
		Settings:       settings,
		Quests:         quests,
		QuestLines:     questLines,
		QuestLineOrder: order,
	}, nil
}

func join(parts ...string) string {
	return strings.Join(parts, "/")
}

func hasJSONExt(name string) bool {
	return strings.HasSuffix(name, ".json")
}

func decodeAndNormalize(ctx context.Context, src datasource.Source, path string) (any, error) {
	text, err := src.ReadToString(ctx, path)
	if err != nil {
		return nil, qerr.IO(path, err)
	}
	v, err := nbt.Decode([]byte(text))
	if err != nil {
		return nil, qerr.JSON(path, err)
	}
	return nbt.Normalize(v), nil
}

func loadSettings(ctx context.Context, root string, src datasource.Source) (*quest.Settings, error) {
	for _, name := range []string{settingsJSON, settingsPlain} {
		path := join(root, name)
		isFile, err := src.IsFile(ctx, path)
		if err != nil {
			return nil, qerr.IO(path, err)
		}
		if !isFile {
			continue
		}
		norm, err := decodeAndNormalize(ctx, src, path)
		if err != nil {
			return nil, err
		}
		return quest.ParseSettings(norm)
	}
	return nil, nil
}

func loadQuests(ctx context.Context, root string, src datasource.Source) (map[questid.ID]*quest.Quest, error) {
	quests := map[questid.ID]*quest.Quest{}
	dir := join(root, questsDir)
	isDir, err := src.IsDir(ctx, dir)
	if err != nil {
		return nil, qerr.IO(dir, err)
	}
	if !isDir {
		return quests, nil
	}

	names, err := src.ListDir(ctx, dir)
	if err != nil {
		return nil, qerr.IO(dir, err)
	}
	sort.Strings(names)

	for _, name := range names {
		if ctx.Err() != nil {
			return nil, qerr.Other("load cancelled: %v", ctx.Err())
		}
		if !hasJSONExt(name) {
			continue
		}
		path := join(dir, name)
		isFile, err := src.IsFile(ctx, path)
		if err != nil {
			return nil, qerr.IO(path, err)
		}
		if !isFile {
			continue
		}
		norm, err := decodeAndNormalize(ctx, src, path)
		if err != nil {
			return nil, err
		}
		q, err := quest.ParseQuest(norm)
		if err != nil {
			return nil, err
		}
		if _, exists := quests[q.ID]; exists {
			return nil, qerr.DuplicateQuestID(path)
		}
		quests[q.ID] = q
	}
	return quests, nil
}

func loadQuestLines(ctx context.Context, root string, src datasource.Source) (map[questid.ID]*quest.QuestLine, []questid.ID, error) {
	questLines := map[questid.ID]*quest.QuestLine{}
	dir := join(root, questLinesDir)
	isDir, err := src.IsDir(ctx, dir)
	if err != nil {
		return nil, nil, qerr.IO(dir, err)
	}
	if !isDir {
		return questLines, nil, nil
	}

	names, err := src.ListDir(ctx, dir)
	if err != nil {
		return nil, nil, qerr.IO(dir, err)
	}
	sort.Strings(names)

	for _, name := range names {
		if ctx.Err() != nil {
			return nil, nil, qerr.Other("load cancelled: %v", ctx.Err())
		}
		lineDir := join(dir, name)
		isLineDir, err := src.IsDir(ctx, lineDir)
		if err != nil {
			return nil, nil, qerr.IO(lineDir, err)
		}
		if !isLineDir {
			continue
		}

		qline, err := loadOneQuestLine(ctx, lineDir, src)
		if err != nil {
			return nil, nil, err
		}
		if qline == nil {
			continue
		}
		if _, exists := questLines[qline.ID]; exists {
			return nil, nil, qerr.DuplicateQuestID(lineDir)
		}
		questLines[qline.ID] = qline
	}

	order := make([]questid.ID, 0, len(questLines))
	for id := range questLines {
		order = append(order, id)
	}
	sort.Slice(order, func(i, j int) bool { return questid.Less(order[i], order[j]) })

	return questLines, order, nil
}

func loadOneQuestLine(ctx context.Context, lineDir string, src datasource.Source) (*quest.QuestLine, error) {
	headerPath := join(lineDir, lineHeader)
	isFile, err := src.IsFile(ctx, headerPath)
	if err != nil {
		return nil, qerr.IO(headerPath, err)
	}
	if !isFile {
		return nil, nil
	}

	norm, err := decodeAndNormalize(ctx, src, headerPath)
	if err != nil {
		return nil, err
	}
	qline, err := quest.ParseQuestLineHeader(norm)
	if err != nil {
		return nil, err
	}

	names, err := src.ListDir(ctx, lineDir)
	if err != nil {
		return nil, qerr.IO(lineDir, err)
	}
	sort.Strings(names)

	type indexedEntry struct {
		id    questid.ID
		entry quest.QuestLineEntry
	}
	var entries []indexedEntry

	for _, name := range names {
		if name == lineHeader || !hasJSONExt(name) {
			continue
		}
		path := join(lineDir, name)
		isFile, err := src.IsFile(ctx, path)
		if err != nil {
			return nil, qerr.IO(path, err)
		}
		if !isFile {
			continue
		}
		norm, err := decodeAndNormalize(ctx, src, path)
		if err != nil {
			return nil, err
		}
		entry, err := quest.ParseQuestLineEntry(norm)
		if err != nil {
			return nil, err
		}
		entries = append(entries, indexedEntry{id: entry.QuestID, entry: *entry})
	}

	sort.SliceStable(entries, func(i, j int) bool { return questid.Less(entries[i].id, entries[j].id) })

	qline.Entries = make([]quest.QuestLineEntry, 0, len(entries))
	for _, e := range entries {
		qline.Entries = append(qline.Entries, e.entry)
	}

	return qline, nil
}

func validateReferences(questLines map[questid.ID]*quest.QuestLine, quests map[questid.ID]*quest.Quest) error {
	ids := make([]questid.ID, 0, len(questLines))
	for id := range questLines {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return questid.Less(ids[i], ids[j]) })

	for _, qlid := range ids {
		qline := questLines[qlid]
		for _, entry := range qline.Entries {
			if _, ok := quests[entry.QuestID]; !ok {
				return qerr.MissingQuestReference(qlid, entry.QuestID)
			}
		}
	}
	return nil
}
