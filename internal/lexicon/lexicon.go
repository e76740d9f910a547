// Package lexicon holds the human-readable vocabulary the cheatsheet must
// spell out in writing but the game data files do not: species, systems,
// resources, reward tiers, and the translated message strings.
package lexicon

var speciesName = map[string]string{
	"anaerobic": "Lanius",
	"crystal":   "Crystal",
	"energy":    "Zoltan",
	"engi":      "Engi",
	"ghost":     "Ghost",
	"human":     "Human",
	"mantis":    "Mantis",
	"rock":      "Rock",
	"slug":      "Slug",
	"traitor":   "Traitor crewmember",
}

var skillName = map[string]string{
	"all_skills": "all skills",
	"combat":     "combat",
	"engines":    "engines",
	"pilot":      "pilot",
	"repair":     "repair",
	"shields":    "shields",
}

// SkillOrder fixes the iteration order for crew skill modifiers so output
// does not depend on map iteration.
var SkillOrder = []string{"all_skills", "combat", "engines", "pilot", "repair", "shields"}

var systemName = map[string]string{
	"clonebay": "clone bay",
	"doors":    "doors",
	"drones":   "drones",
	"engine":   "engines",
	"engines":  "engines",
	"hacking":  "hacking",
	"medbay":   "medbay",
	"oxygen":   "oxygen",
	"pilot":    "piloting",
	"sensors":  "sensors",
	"shields":  "shields",
	"weapons":  "weapons",

	"random":  "random system",
	"room":    "random room",
	"reactor": "reactor",
}

var damageEffect = map[string]string{
	"all":    "breach and fire",
	"fire":   "fire",
	"breach": "breach",
	"random": "may cause breach or fire",
}

var resourceName = map[string]string{
	"drones":   "Drone Parts",
	"fuel":     "Fuel",
	"missile":  "Missiles",
	"missiles": "Missiles",
	"scrap":    "Scrap",
}

var autorewardKind = map[string]string{
	"droneparts": "drone parts and scrap",
	"fuel":       "fuel and scrap",
	"missiles":   "missiles and scrap",
	"scrap":      "scrap and resources",

	"droneparts_only": "drone parts",
	"fuel_only":       "fuel",
	"missiles_only":   "missiles",
	"scrap_only":      "scrap",

	"standard": "scrap and low resources",
	"stuff":    "resources and low scrap",
}

var autorewardLevel = map[string]string{
	"LOW":    "Low",
	"MED":    "Medium",
	"MEDIUM": "Medium",
	"HIGH":   "High",
	"RANDOM": "Random",
}

var unlockName = map[string]string{
	"1": "Stealth Cruiser",
	"2": "Mantis Cruiser",
	"4": "Federation Cruiser",
	"5": "Slug Cruiser",
	"6": "Rock Cruiser",
	"7": "Zoltan Cruiser",
	"8": "Crystal Cruiser",
}

// A short description reads better than spelling out the whole list.
var blueprintListName = map[string]string{
	"WEAPONS_BOMBS_CHEAP":        "a random cheap bomb",
	"WEAPONS_MISSILES_EXPENSIVE": "a random large rocket",
	"WEAPONS_CRYSTAL":            "a crystal weapon",
}

func Species(class string) (string, bool) {
	name, ok := speciesName[class]
	return name, ok
}

func Skill(id string) (string, bool) {
	name, ok := skillName[id]
	return name, ok
}

func System(id string) (string, bool) {
	name, ok := systemName[id]
	return name, ok
}

func DamageEffect(id string) (string, bool) {
	name, ok := damageEffect[id]
	return name, ok
}

func Resource(id string) (string, bool) {
	name, ok := resourceName[id]
	return name, ok
}

func AutorewardKind(id string) (string, bool) {
	name, ok := autorewardKind[id]
	return name, ok
}

func AutorewardLevel(id string) (string, bool) {
	name, ok := autorewardLevel[id]
	return name, ok
}

func UnlockName(id string) (string, bool) {
	name, ok := unlockName[id]
	return name, ok
}
