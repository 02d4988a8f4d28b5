package paths

import "fmt"

// ItemType identifies what kind of trackable item a progress record is for.
type ItemType string

const (
	// ItemLesson is a lesson in the unit/level/lesson format.
	ItemLesson ItemType = "lesson"
	// ItemTopic is a key topic in the legacy stage format.
	ItemTopic ItemType = "topic"
	// ItemProject is a level's challenge project (new) or a stage's
	// suggested project (legacy).
	ItemProject ItemType = "project"
	// ItemStage marks a whole legacy stage as complete.
	ItemStage ItemType = "stage"
	// ItemBoss is a unit's boss challenge.
	ItemBoss ItemType = "boss"
)

// IsTopicLike reports whether completing items of this type counts toward
// the path's topic rollup (and therefore toward path completion).
func (t ItemType) IsTopicLike() bool {
	return t == ItemLesson || t == ItemTopic
}

// Structural limits imposed by the encoded position key. The single-integer
// encoding reserves two decimal digits for the level slot, so a unit holds
// at most 99 levels (slot 99 is the boss) and a path at most 100 units.
const (
	MaxUnits         = 100
	MaxLevelsPerUnit = 99
	bossLevelSlot    = 99
)

// PositionKey addresses a scoped position inside a new-format path:
// (unit, level), with a unit's boss challenge occupying the reserved boss
// slot. Legacy-format paths do not use it; their stored position is the
// raw stage index, and the two keying schemes are never unified.
type PositionKey struct {
	UnitIndex  int
	LevelIndex int
}

// LevelKey returns the position of a level within a unit.
func LevelKey(unitIndex, levelIndex int) PositionKey {
	return PositionKey{UnitIndex: unitIndex, LevelIndex: levelIndex}
}

// BossKey returns the boss-challenge position for a unit.
func BossKey(unitIndex int) PositionKey {
	return PositionKey{UnitIndex: unitIndex, LevelIndex: bossLevelSlot}
}

// IsBoss reports whether the key addresses a boss slot.
func (k PositionKey) IsBoss() bool { return k.LevelIndex == bossLevelSlot }

// Valid reports whether the key fits the encoding.
func (k PositionKey) Valid() bool {
	return k.UnitIndex >= 0 && k.UnitIndex < MaxUnits &&
		k.LevelIndex >= 0 && k.LevelIndex <= bossLevelSlot
}

// Encode collapses the key into the single integer stored in progress rows.
// The arithmetic form is kept for storage compatibility with existing data;
// everything above the storage layer works with the composite type.
func (k PositionKey) Encode() int {
	return k.UnitIndex*100 + k.LevelIndex
}

// DecodePositionKey is the inverse of Encode.
func DecodePositionKey(v int) PositionKey {
	return PositionKey{UnitIndex: v / 100, LevelIndex: v % 100}
}

// ProgressMapKey is the composite lookup key handed to the presentation
// layer for O(1) completion checks: "<position>-<itemType>-<index>".
// Position is PositionKey.Encode() for new-format paths and the raw stage
// index for legacy paths.
func ProgressMapKey(position int, itemType ItemType, itemIndex int) string {
	return fmt.Sprintf("%d-%s-%d", position, itemType, itemIndex)
}
