package graph

import (
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"

	"starsheet/internal/lexicon"
	"starsheet/internal/parser"
)

var (
	ErrUnknownEnum     = errors.New("value outside the known set")
	ErrIncoherentRange = errors.New("resource range straddles zero")
)

// numRange converts a min/max range to human-readable form.
func numRange(lo, hi int) string {
	if lo == hi {
		return strconv.Itoa(lo)
	}
	return fmt.Sprintf(" %d-%d ", lo, hi)
}

func intAttr(node *parser.Node, name string) (int, error) {
	value, err := strconv.Atoi(node.Attr(name))
	if err != nil {
		return 0, fmt.Errorf("attribute %s=%q is not a number", name, node.Attr(name))
	}
	return value, nil
}

// eventOutcomes interprets the effect tags of an event into outcome lines.
// It returns the (possibly updated) enemy ship identity and whether the
// event ends in a fight; a nested <ship load=...> sets the identity that
// descendant choice events inherit.
func (b *Builder) eventOutcomes(node *parser.Node, enemyShip string) ([]Outcome, string, bool, error) {
	H := html.EscapeString
	var lines []Outcome
	add := func(markup string) {
		lines = append(lines, Outcome{HTML: markup})
	}
	endsWithFight := false

	if hazard := node.Find("environment"); hazard != nil {
		var what string
		switch typ := hazard.Attr("type"); typ {
		case "asteroid":
			what = "Asteroid Field"
		case "nebula":
			what = "Nebula"
		case "pulsar":
			what = "Pulsar"
		case "storm":
			what = "Plasma Storm"
		case "sun":
			what = "Red Star"
		case "PDS":
			switch target := hazard.Attr("target"); target {
			case "all":
				what = "Confused Anti-Ship Battery targeting both ships"
			case "enemy":
				what = "Friendly Anti-Ship Battery"
			case "player":
				what = "Anti-Ship Battery targeting us"
			default:
				return nil, "", false, fmt.Errorf("%w: environment target %q", ErrUnknownEnum, target)
			}
		default:
			return nil, "", false, fmt.Errorf("%w: environment type %q", ErrUnknownEnum, typ)
		}
		add("<strong>Environment</strong> is " + H(what))
	}

	if boarders := node.Find("boarders"); boarders != nil {
		lo, err := intAttr(boarders, "min")
		if err != nil {
			return nil, "", false, fmt.Errorf("boarders: %w", err)
		}
		hi, err := intAttr(boarders, "max")
		if err != nil {
			return nil, "", false, fmt.Errorf("boarders: %w", err)
		}
		class := boarders.Attr("class")
		if class == "" {
			class = "random"
		}

		species := "enemies"
		if class != "random" {
			name, ok := lexicon.Species(class)
			if !ok {
				return nil, "", false, fmt.Errorf("%w: species %q", ErrUnknownEnum, class)
			}
			species = name
		}

		breach := ""
		if strings.EqualFold(boarders.Attr("breach"), "true") {
			breach = " (with <strong>breach</strong>)"
		}

		add("<strong>Boarded</strong> by " + H(numRange(lo, hi)) + " " + H(species) + breach)
	}

	if remove := node.Find("remove"); remove != nil {
		add("<strong>Remove</strong> " + H(remove.Attr("name")))
	}

	if itemModify := node.Find("item_modify"); itemModify != nil {
		// Show payments before rewards.
		for _, direction := range []string{"minus", "plus"} {
			for _, item := range itemModify.FindAll("item") {
				what, ok := lexicon.Resource(item.Attr("type"))
				if !ok {
					return nil, "", false, fmt.Errorf("%w: resource %q", ErrUnknownEnum, item.Attr("type"))
				}
				lo, err := intAttr(item, "min")
				if err != nil {
					return nil, "", false, fmt.Errorf("item_modify: %w", err)
				}
				hi, err := intAttr(item, "max")
				if err != nil {
					return nil, "", false, fmt.Errorf("item_modify: %w", err)
				}

				switch {
				case lo >= 0 && hi >= 0:
					if direction == "plus" {
						add("+" + H(numRange(lo, hi)) + " <strong>" + H(what) + "</strong>")
					}
				case lo <= 0 && hi <= 0:
					if direction == "minus" {
						add("−" + H(numRange(-hi, -lo)) + " <strong>" + H(what) + "</strong>")
					}
				default:
					return nil, "", false, fmt.Errorf("%w: %s %d..%d", ErrIncoherentRange, item.Attr("type"), lo, hi)
				}
			}
		}
	}

	if reward := node.Find("autoReward"); reward != nil {
		level := strings.ToUpper(reward.Attr("level"))
		kind := reward.Text

		blueprint := ""
		switch kind {
		case "augment":
			kind, blueprint = "scrap_only", "Augmentation"
		case "drone":
			kind, blueprint = "scrap_only", "Drone Schematic"
		case "weapon":
			kind, blueprint = "scrap_only", "Weapon"
		}

		levelName, ok := lexicon.AutorewardLevel(level)
		if !ok {
			return nil, "", false, fmt.Errorf("%w: autoReward level %q", ErrUnknownEnum, level)
		}
		kindName, ok := lexicon.AutorewardKind(kind)
		if !ok {
			return nil, "", false, fmt.Errorf("%w: autoReward kind %q", ErrUnknownEnum, kind)
		}

		add("<strong>" + levelName + "</strong> " + kindName)

		if blueprint != "" {
			line, err := b.blueprintOutcome(blueprint, "RANDOM")
			if err != nil {
				return nil, "", false, err
			}
			lines = append(lines, line)
		}
	}

	if crew := node.Find("crewMember"); crew != nil {
		amount, err := intAttr(crew, "amount")
		if err != nil {
			return nil, "", false, fmt.Errorf("crewMember: %w", err)
		}
		class := crew.Attr("class")
		if class == "" {
			class = crew.Attr("type")
		}

		var extra []string
		if class != "" && class != "random" {
			name, ok := lexicon.Species(class)
			if !ok {
				return nil, "", false, fmt.Errorf("%w: species %q", ErrUnknownEnum, class)
			}
			extra = append(extra, name)
		}
		for _, skill := range lexicon.SkillOrder {
			if value := crew.Attr(skill); value != "" {
				skillName, _ := lexicon.Skill(skill)
				extra = append(extra, fmt.Sprintf("with level %s %s", value, skillName))
			}
		}
		extraStr := ""
		if len(extra) > 0 {
			extraStr = " " + strings.Join(extra, " ")
		}

		n := strconv.Itoa(abs(amount))
		switch {
		case amount <= -2:
			add("<strong>Lose " + H(n) + " Crew</strong>")
		case amount == -1:
			add("<strong>Lose Crew</strong>")
		case amount == 0:
			b.warn(WarnZeroCrew, "crewMember amount is 0")
		case amount == 1:
			add("<strong>Gain Crew</strong>" + H(extraStr))
		default:
			add("<strong>Gain " + H(n) + " Crew</strong>" + H(extraStr))
		}
	}

	if removeCrew := node.Find("removeCrew"); removeCrew != nil {
		class := removeCrew.Attr("class")
		if class == "" {
			class = "random"
		}
		species := ""
		if class != "random" {
			name, ok := lexicon.Species(class)
			if !ok {
				return nil, "", false, fmt.Errorf("%w: species %q", ErrUnknownEnum, class)
			}
			species = name
		}

		cloneMsg := "<strong>(cannot be cloned)</strong>"
		if clone := removeCrew.Find("clone"); clone != nil && clone.Text == "true" {
			cloneMsg = "(can be saved clone bay)"
		}

		add("<strong>Lose " + H(species) + " Crew</strong> " + cloneMsg)
	}

	if damages := node.FindAll("damage"); len(damages) > 0 {
		hull := 0
		for _, damage := range damages {
			amount, err := intAttr(damage, "amount")
			if err != nil {
				return nil, "", false, fmt.Errorf("damage: %w", err)
			}
			hull += amount
		}
		if hull < 0 {
			add(H(strconv.Itoa(-hull)) + " <strong>Hull Repair</strong>")
		} else if hull > 0 {
			add(H(strconv.Itoa(hull)) + " <strong>Hull Damage</strong>")
		}

		for _, damage := range damages {
			systemID := damage.Attr("system")
			if systemID == "" {
				continue
			}
			system, ok := lexicon.System(systemID)
			if !ok {
				return nil, "", false, fmt.Errorf("%w: system %q", ErrUnknownEnum, systemID)
			}
			effectMsg := ""
			if effect := damage.Attr("effect"); effect != "" {
				name, ok := lexicon.DamageEffect(effect)
				if !ok {
					return nil, "", false, fmt.Errorf("%w: damage effect %q", ErrUnknownEnum, effect)
				}
				effectMsg = " (" + name + ")"
			}
			add(H(damage.Attr("amount")) + " <strong>System Damage</strong> to " + H(system) + H(effectMsg))
		}
	}

	for _, status := range node.FindAll("status") {
		systemID := status.Attr("system")
		system, ok := lexicon.System(systemID)
		if !ok {
			return nil, "", false, fmt.Errorf("%w: system %q", ErrUnknownEnum, systemID)
		}
		amount := status.Attr("amount")
		if amount == "" {
			amount = "???"
		}

		var msg string
		switch typ := status.Attr("type"); typ {
		case "clear":
			msg = "<strong>Restore Power</strong> to " + H(system)
		case "divide":
			if amount != "2" {
				return nil, "", false, fmt.Errorf("%w: status divide by %q", ErrUnknownEnum, amount)
			}
			msg = "<strong>Half Power</strong> to " + H(system)
		case "limit":
			if amount == "0" {
				msg = "<strong>Disable</strong> " + H(system)
			} else {
				msg = "<strong>Limit Power</strong> to " + H(system) + ", down to " + H(amount)
			}
		case "loss":
			msg = "<strong>Reduce Power</strong> to " + H(system) + " by " + H(amount)
		default:
			return nil, "", false, fmt.Errorf("%w: status type %q", ErrUnknownEnum, typ)
		}

		switch target := status.Attr("target"); target {
		case "player":
		case "enemy":
			msg = "<strong>Enemy ship: </strong>" + msg
		default:
			return nil, "", false, fmt.Errorf("%w: status target %q", ErrUnknownEnum, target)
		}
		add(msg)
	}

	if pursuit := node.Find("modifyPursuit"); pursuit != nil {
		amount, err := intAttr(pursuit, "amount")
		if err != nil {
			return nil, "", false, fmt.Errorf("modifyPursuit: %w", err)
		}
		if amount == 0 {
			return nil, "", false, fmt.Errorf("%w: modifyPursuit amount 0", ErrUnknownEnum)
		}
		what := "Rebel Fleet Advances"
		if amount < 0 {
			what = "Rebel Fleet Delayed"
		}
		n := abs(amount)
		plural := "jumps"
		if n == 1 {
			plural = "jump"
		}
		add(fmt.Sprintf("<strong>%s</strong> by %d %s", H(what), n, plural))
	}

	if node.Find("reveal_map") != nil {
		add("<strong>Map Update</strong>")
	}

	if upgrade := node.Find("upgrade"); upgrade != nil {
		system, ok := lexicon.System(upgrade.Attr("system"))
		if !ok {
			return nil, "", false, fmt.Errorf("%w: system %q", ErrUnknownEnum, upgrade.Attr("system"))
		}
		markup := "<strong>Upgrade</strong> " + H(system)
		if amount := upgrade.Attr("amount"); amount != "1" {
			markup += " (by " + H(amount) + ")"
		}
		add(markup)
	}

	for _, blueprint := range []struct{ tag, what string }{
		{"augment", "Augmentation"},
		{"weapon", "Weapon"},
		{"drone", "Drone Schematic"},
	} {
		if item := node.Find(blueprint.tag); item != nil {
			line, err := b.blueprintOutcome(blueprint.what, item.Attr("name"))
			if err != nil {
				return nil, "", false, err
			}
			lines = append(lines, line)
		}
	}

	if quest := node.Find("quest"); quest != nil {
		id := quest.Attr("event")
		// Quest markers resolve in top-level context against the declared
		// name sets; the target may live in a file not yet built.
		ref, err := b.graph.ResolveDeclared(id, ContextTopLevel)
		if err != nil {
			return nil, "", false, fmt.Errorf("quest marker: %w", err)
		}
		switch ref.Kind {
		case KindEvent:
			b.graph.QuestEvents[id] = struct{}{}
		case KindGroup:
			b.graph.QuestGroups[id] = struct{}{}
		}
		lines = append(lines, Outcome{
			HTML: "<strong>Quest</strong> marker for %s",
			Link: &ref,
		})
	}

	if unlock := node.Find("unlockShip"); unlock != nil {
		name, ok := lexicon.UnlockName(unlock.Attr("id"))
		if !ok {
			return nil, "", false, fmt.Errorf("%w: unlockShip id %q", ErrUnknownEnum, unlock.Attr("id"))
		}
		add("<strong>Unlock</strong> the " + H(name))
	}

	if node.Find("secretSector") != nil {
		add("<strong>Travel</strong> to the crystal sector!")
	}

	if node.Find("store") != nil {
		add("<strong>Enter Store</strong>")
	}

	if ship := node.Find("ship"); ship != nil {
		shipID := ship.Attr("load")
		if shipID != "" {
			enemyShip = shipID
		}

		isHostile := false
		if hostility := strings.ToLower(ship.Attr("hostile")); hostility != "" {
			switch hostility {
			case "true":
				isHostile = true
			case "false":
			default:
				return nil, "", false, fmt.Errorf("%w: hostile %q", ErrUnknownEnum, hostility)
			}
		}

		if shipID != "" {
			ref := Ref{Kind: KindShip, Name: shipID}
			verb := "Encounter"
			if isHostile {
				verb = "Fight"
			}
			lines = append(lines, Outcome{
				HTML: "<strong>" + verb + "</strong> a %s",
				Link: &ref,
			})
		} else if isHostile {
			add("<strong>Fight</strong>")
		} else {
			add("<strong>End Fight</strong>")
		}

		if isHostile && enemyShip != "" {
			endsWithFight = true
		}
	}

	// fleet, img, and repair are cosmetic; recognized by the shape tables
	// but nothing to show.

	return lines, enemyShip, endsWithFight, nil
}

// blueprintOutcome renders a weapon/drone/augment reward line.
func (b *Builder) blueprintOutcome(what, id string) (Outcome, error) {
	H := html.EscapeString
	switch id {
	case "RANDOM":
		return Outcome{HTML: "<strong>" + H(what) + "</strong>"}, nil
	case "DLC_AUGMENTS", "DLC_DRONES", "DLC_WEAPONS":
		return Outcome{HTML: "<strong>" + H(what) + "</strong> (from Advanced Edition)"}, nil
	default:
		name, ok := b.trans.Blueprint(id)
		if !ok {
			return Outcome{}, fmt.Errorf("%w: blueprint %q", ErrUnknownEnum, id)
		}
		return Outcome{HTML: "<strong>" + H(what) + "</strong> (" + H(name) + ")"}, nil
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
