package importance

import (
	"errors"
	"math"
	"testing"

	"questgraph/internal/qerr"
	"questgraph/internal/quest"
	"questgraph/internal/questdb"
	"questgraph/internal/questid"
)

func mkQuest(high, low int32, logic string, prereqs ...questid.ID) *quest.Quest {
	q := &quest.Quest{
		ID:                    questid.FromParts(high, low),
		Prerequisites:         prereqs,
		RequiredPrerequisites: prereqs,
	}
	if logic != "" {
		q.Properties = &quest.Properties{Name: "q", QuestLogic: logic}
	}
	return q
}

func mkDB(quests ...*quest.Quest) *questdb.Database {
	db := &questdb.Database{Quests: map[questid.ID]*quest.Quest{}}
	for _, q := range quests {
		db.Quests[q.ID] = q
	}
	return db
}

func TestComputeRejectsAlphaOutOfRange(t *testing.T) {
	db := mkDB(mkQuest(0, 1, ""))
	_, err := Compute(db, 1.5, false, false)
	var qe *qerr.Error
	if !errors.As(err, &qe) || qe.Kind != qerr.KindAlphaOutOfRange {
		t.Fatalf("Compute error = %v, want AlphaOutOfRange", err)
	}
}

func TestComputeBaseScoreFromDependentCount(t *testing.T) {
	// q2 depends on q1: q1 gets raw=1 dependent weight.
	q1 := mkQuest(0, 1, "")
	q2 := mkQuest(0, 2, "", q1.ID)
	db := mkDB(q1, q2)

	scores, err := Compute(db, 0.0, false, false)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if scores[q1.ID] != 1.0 {
		t.Errorf("scores[q1] = %v, want 1.0", scores[q1.ID])
	}
	if scores[q2.ID] != 0.0 {
		t.Errorf("scores[q2] = %v, want 0.0", scores[q2.ID])
	}
}

func TestComputePropagatesOneHop(t *testing.T) {
	q1 := mkQuest(0, 1, "")
	q2 := mkQuest(0, 2, "", q1.ID)
	q3 := mkQuest(0, 3, "", q2.ID)
	db := mkDB(q1, q2, q3)

	scores, err := Compute(db, 0.5, false, false)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	// base(q1)=1 (q2 depends on it), base(q2)=1 (q3 depends on it), base(q3)=0
	// score(q1) = base(q1) + 0.5 * weight(q1->q2) * base(q2) = 1 + 0.5*1*1 = 1.5
	if math.Abs(scores[q1.ID]-1.5) > 1e-9 {
		t.Errorf("scores[q1] = %v, want 1.5", scores[q1.ID])
	}
	if math.Abs(scores[q2.ID]-1.0) > 1e-9 {
		t.Errorf("scores[q2] = %v, want 1.0", scores[q2.ID])
	}
	if scores[q3.ID] != 0.0 {
		t.Errorf("scores[q3] = %v, want 0.0", scores[q3.ID])
	}
}

func TestComputeUseLogCompression(t *testing.T) {
	q1 := mkQuest(0, 1, "")
	q2 := mkQuest(0, 2, "", q1.ID)
	db := mkDB(q1, q2)

	scores, err := Compute(db, 0.0, true, false)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	want := math.Log1p(1.0)
	if math.Abs(scores[q1.ID]-want) > 1e-9 {
		t.Errorf("scores[q1] = %v, want %v", scores[q1.ID], want)
	}
}

func TestComputeNormalizeKeepsResultBelowOne(t *testing.T) {
	q1 := mkQuest(0, 1, "")
	q2 := mkQuest(0, 2, "", q1.ID)
	db := mkDB(q1, q2)

	scores, err := Compute(db, 0.0, false, true)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if scores[q1.ID] >= 1.0 {
		t.Errorf("scores[q1] = %v, want strictly < 1.0", scores[q1.ID])
	}
	if scores[q1.ID] <= 0.99999 {
		t.Errorf("scores[q1] = %v, want close to 1.0", scores[q1.ID])
	}
}

func TestComputeNormalizeNoopWhenAllZero(t *testing.T) {
	q1 := mkQuest(0, 1, "")
	db := mkDB(q1)

	scores, err := Compute(db, 0.0, false, true)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if scores[q1.ID] != 0.0 {
		t.Errorf("scores[q1] = %v, want 0.0", scores[q1.ID])
	}
}

func TestComputeDetectsCycle(t *testing.T) {
	id1 := questid.FromParts(0, 1)
	id2 := questid.FromParts(0, 2)
	q1 := mkQuest(0, 1, "", id2)
	q2 := mkQuest(0, 2, "", id1)
	db := mkDB(q1, q2)

	_, err := Compute(db, 0.0, false, false)
	var qe *qerr.Error
	if !errors.As(err, &qe) || qe.Kind != qerr.KindCycleDetected {
		t.Fatalf("Compute error = %v, want CycleDetected", err)
	}
	if len(qe.Cycle) < 2 {
		t.Errorf("Cycle = %v, want at least 2 entries", qe.Cycle)
	}
}

func TestComputeXORQuestContributesNoOutgoingEdges(t *testing.T) {
	id1 := questid.FromParts(0, 1)
	id2 := questid.FromParts(0, 2)
	// q2 -> q1 but q2 has XOR logic so should not create an edge or cycle
	// even if q1 also points back at q2.
	q1 := mkQuest(0, 1, "", id2)
	q2 := mkQuest(0, 2, "XOR", id1)
	db := mkDB(q1, q2)

	scores, err := Compute(db, 0.0, false, false)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	// q2's edge to q1 is suppressed, so q1 has no dependents.
	if scores[id1] != 0.0 {
		t.Errorf("scores[q1] = %v, want 0.0 (XOR quest contributes no edges)", scores[id1])
	}
}

func TestComputeOptionalPrerequisitesSplitWeightEvenly(t *testing.T) {
	// q1 and q2 are both optional prerequisites of q3, so each should be
	// credited with weight 0.5 (not 1.0) as q3's dependent.
	id1 := questid.FromParts(0, 1)
	id2 := questid.FromParts(0, 2)
	q1 := mkQuest(0, 1, "")
	q2 := mkQuest(0, 2, "")
	q3 := &quest.Quest{
		ID:                    questid.FromParts(0, 3),
		OptionalPrerequisites: []questid.ID{id1, id2},
	}
	db := mkDB(q1, q2, q3)

	scores, err := Compute(db, 0.0, false, false)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if scores[id1] != 0.5 {
		t.Errorf("scores[q1] = %v, want 0.5", scores[id1])
	}
	if scores[id2] != 0.5 {
		t.Errorf("scores[q2] = %v, want 0.5", scores[id2])
	}
}

func TestComputeStarShapeGivesHubStrictlyHighestScore(t *testing.T) {
	// A, B, D each require C: C should end up with a strictly greater
	// score than any of its three dependents.
	idC := questid.FromParts(0, 3)
	c := mkQuest(0, 3, "")
	a := mkQuest(0, 1, "", idC)
	b := mkQuest(0, 2, "", idC)
	d := mkQuest(0, 4, "", idC)
	db := mkDB(c, a, b, d)

	scores, err := Compute(db, 0.5, true, false)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	for _, leaf := range []questid.ID{a.ID, b.ID, d.ID} {
		if scores[idC] <= scores[leaf] {
			t.Errorf("scores[C] = %v, want strictly greater than scores[%v] = %v", scores[idC], leaf, scores[leaf])
		}
	}
}

func TestOrderPrerequisitesSortsByScoreThenID(t *testing.T) {
	idA := questid.FromParts(0, 1)
	idB := questid.FromParts(0, 2)
	idC := questid.FromParts(0, 3)
	q := &quest.Quest{Prerequisites: []questid.ID{idA, idB, idC}}
	scores := map[questid.ID]float64{idA: 1.0, idB: 2.0, idC: 1.0}

	got := OrderPrerequisites(q, scores)
	want := []questid.ID{idB, idA, idC}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("OrderPrerequisites = %v, want %v", got, want)
		}
	}
}
