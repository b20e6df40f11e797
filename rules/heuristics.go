package rules

import "wargame/game"

// The three stock heuristics, selectable from the command line by id. All
// of them score attacker minus defender, so positive favors the attacker.
func init() {
	game.RegisterHeuristic(0, material)
	game.RegisterHeuristic(1, weightedMaterial)
	game.RegisterHeuristic(2, positional)
}

// material counts units: 9999 for an AI, 3 for anything else.
func material(s game.State) int {
	b := s.(*Board)
	return materialSide(b, game.Attacker) - materialSide(b, game.Defender)
}

func materialSide(b *Board, owner game.Role) int {
	total := 0
	b.units(owner, func(_ Coord, u Unit) {
		if u.Kind == AI {
			total += 9999
		} else {
			total += 3
		}
	})
	return total
}

// weightedMaterial weights units by remaining health: 999 per health point
// for an AI, 3 per health point for anything else.
func weightedMaterial(s game.State) int {
	b := s.(*Board)
	return weightedSide(b, game.Attacker) - weightedSide(b, game.Defender)
}

func weightedSide(b *Board, owner game.Role) int {
	total := 0
	b.units(owner, func(_ Coord, u Unit) {
		if u.Kind == AI {
			total += 999 * u.Health
		} else {
			total += 3 * u.Health
		}
	})
	return total
}

// positional extends the health-weighted count with the unit's 3x3
// neighborhood: a penalty for every neighbor of the side waiting to move
// that could kill the unit in one attack, a bonus for friendly company
// around an AI, and a bonus for adjacent repairers with something to
// repair. Neighbors are judged friend or foe against the side to move, not
// against the unit's owner.
func positional(s game.State) int {
	b := s.(*Board)
	return positionalSide(b, game.Attacker) - positionalSide(b, game.Defender)
}

func positionalSide(b *Board, owner game.Role) int {
	total := 0
	b.units(owner, func(c Coord, u Unit) {
		switch u.Kind {
		case AI:
			total += 99999 * u.Health
		case Virus, Tech:
			total += 9 * u.Health
		default:
			total += 3 * u.Health
		}

		for _, nc := range c.surrounding() {
			neighbor, ok := b.At(nc)
			if !ok {
				continue
			}
			if neighbor.Owner != b.toMove {
				if neighbor.DamageTo(u) >= u.Health {
					switch u.Kind {
					case AI:
						total -= 9999 * u.Health
					case Virus, Tech:
						total -= 5 * u.Health
					default:
						total -= 2 * u.Health
					}
				}
			} else {
				if u.Kind == AI {
					total += 999
				}
				if rep := neighbor.RepairTo(u); rep > 0 && u.Health < MaxHealth {
					switch u.Kind {
					case AI:
						total += 9999 * rep
					case Virus, Tech:
						total += 5 * rep
					default:
						total += 2 * rep
					}
				}
			}
		}
	})
	return total
}
