package rules

import (
	"strings"

	"wargame/game"
)

// UnitKind enumerates the five unit types. The numeric order indexes the
// damage and repair tables.
type UnitKind int

const (
	AI UnitKind = iota
	Tech
	Virus
	Program
	Firewall
)

var kindNames = [...]string{"AI", "Tech", "Virus", "Program", "Firewall"}

func (k UnitKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "?"
	}
	return kindNames[k]
}

// MaxHealth is the health cap for every unit.
const MaxHealth = 9

// damageTable[source][target] is the damage a source kind inflicts on a
// target kind in one attack. Attacks are bidirectional: both sides consult
// the table from their own row.
var damageTable = [5][5]int{
	{3, 3, 3, 3, 1}, // AI
	{1, 1, 6, 1, 1}, // Tech
	{9, 6, 1, 6, 1}, // Virus
	{3, 3, 3, 3, 1}, // Program
	{1, 1, 1, 1, 1}, // Firewall
}

// repairTable[source][target] is the health a source kind restores on a
// friendly target kind. Only the AI and the Tech can repair anything.
var repairTable = [5][5]int{
	{0, 1, 1, 0, 0}, // AI
	{3, 0, 0, 3, 3}, // Tech
	{0, 0, 0, 0, 0}, // Virus
	{0, 0, 0, 0, 0}, // Program
	{0, 0, 0, 0, 0}, // Firewall
}

// Unit is a single piece on the board. The zero value marks an empty cell:
// a live unit always has health of at least 1.
type Unit struct {
	Owner  game.Role
	Kind   UnitKind
	Health int
}

// Alive reports whether the unit is still on the board.
func (u Unit) Alive() bool {
	return u.Health > 0
}

// DamageTo returns the damage u inflicts on target in one attack, capped at
// the target's remaining health.
func (u Unit) DamageTo(target Unit) int {
	amount := damageTable[u.Kind][target.Kind]
	if amount > target.Health {
		return target.Health
	}
	return amount
}

// RepairTo returns the health u restores on a friendly target, capped so the
// target never exceeds MaxHealth. Zero means u cannot repair the target.
func (u Unit) RepairTo(target Unit) int {
	amount := repairTable[u.Kind][target.Kind]
	if target.Health+amount > MaxHealth {
		return MaxHealth - target.Health
	}
	return amount
}

// String renders the unit as owner initial, kind initial and health digit,
// e.g. the attacker's Virus at full health is "aV9".
func (u Unit) String() string {
	owner := strings.ToLower(u.Owner.String()[:1])
	kind := u.Kind.String()[:1]
	return owner + kind + string(rune('0'+u.Health))
}
