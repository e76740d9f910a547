package graph

import (
	"errors"
	"testing"
)

func TestOutcomesUnknownEnumFatal(t *testing.T) {
	cases := map[string]string{
		"environment type": `<FTL><event name="A"><environment type="blizzard"/></event></FTL>`,
		"species":          `<FTL><event name="A"><boarders min="1" max="2" class="klingon"/></event></FTL>`,
		"resource":         `<FTL><event name="A"><item_modify><item type="gold" min="1" max="2"/></item_modify></event></FTL>`,
		"status type":      `<FTL><event name="A"><status type="boost" target="player" system="shields"/></event></FTL>`,
		"unlock id":        `<FTL><event name="A"><unlockShip id="99"/></event></FTL>`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			err := buildErr(t, content)
			if !errors.Is(err, ErrUnknownEnum) {
				t.Fatalf("expected ErrUnknownEnum, got %v", err)
			}
		})
	}
}

func TestOutcomesZeroStraddlingRangeFatal(t *testing.T) {
	err := buildErr(t, `<FTL>
		<event name="A">
			<item_modify>
				<item type="scrap" min="-5" max="5"/>
			</item_modify>
		</event>
	</FTL>`)
	if !errors.Is(err, ErrIncoherentRange) {
		t.Fatalf("expected ErrIncoherentRange, got %v", err)
	}
}

func TestOutcomesAutoRewardItemKinds(t *testing.T) {
	g, _ := build(t, `<FTL>
		<event name="A">
			<autoReward level="HIGH">weapon</autoReward>
		</event>
	</FTL>`)

	event := g.Events["A"]
	if len(event.Outcomes) != 2 {
		t.Fatalf("expected reward line plus blueprint line, got %+v", event.Outcomes)
	}
	if event.Outcomes[0].HTML != "<strong>High</strong> scrap" {
		t.Fatalf("unexpected reward line: %q", event.Outcomes[0].HTML)
	}
	if event.Outcomes[1].HTML != "<strong>Weapon</strong>" {
		t.Fatalf("unexpected blueprint line: %q", event.Outcomes[1].HTML)
	}
}

func TestOutcomesCrew(t *testing.T) {
	t.Run("gain with species and skill", func(t *testing.T) {
		g, _ := build(t, `<FTL>
			<event name="A">
				<crewMember amount="1" class="engi" repair="2"/>
			</event>
		</FTL>`)
		got := g.Events["A"].Outcomes[0].HTML
		want := "<strong>Gain Crew</strong> Engi with level 2 repair"
		if got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	})

	t.Run("lose several", func(t *testing.T) {
		g, _ := build(t, `<FTL>
			<event name="A"><crewMember amount="-2"/></event>
		</FTL>`)
		if got := g.Events["A"].Outcomes[0].HTML; got != "<strong>Lose 2 Crew</strong>" {
			t.Fatalf("got %q", got)
		}
	})

	t.Run("zero warns", func(t *testing.T) {
		_, warnings := build(t, `<FTL>
			<event name="A"><crewMember amount="0"/></event>
		</FTL>`)
		if !hasWarning(warnings, WarnZeroCrew) {
			t.Fatalf("expected zero-crew warning")
		}
	})
}

func TestOutcomesHullDamageSums(t *testing.T) {
	g, _ := build(t, `<FTL>
		<event name="A">
			<damage amount="3"/>
			<damage amount="2" system="shields" effect="fire"/>
		</event>
	</FTL>`)

	outcomes := g.Events["A"].Outcomes
	if len(outcomes) != 2 {
		t.Fatalf("unexpected outcomes: %+v", outcomes)
	}
	if outcomes[0].HTML != "5 <strong>Hull Damage</strong>" {
		t.Fatalf("unexpected hull line: %q", outcomes[0].HTML)
	}
	if outcomes[1].HTML != "2 <strong>System Damage</strong> to shields (fire)" {
		t.Fatalf("unexpected system line: %q", outcomes[1].HTML)
	}
}

func TestOutcomesPursuit(t *testing.T) {
	g, _ := build(t, `<FTL>
		<event name="A"><modifyPursuit amount="-1"/></event>
		<event name="B"><modifyPursuit amount="2"/></event>
	</FTL>`)

	if got := g.Events["A"].Outcomes[0].HTML; got != "<strong>Rebel Fleet Delayed</strong> by 1 jump" {
		t.Fatalf("got %q", got)
	}
	if got := g.Events["B"].Outcomes[0].HTML; got != "<strong>Rebel Fleet Advances</strong> by 2 jumps" {
		t.Fatalf("got %q", got)
	}
}

func TestOutcomesShipEncounterLink(t *testing.T) {
	g, _ := build(t, `<FTL>
		<event name="A"><ship load="PIRATE" hostile="true"/></event>
	</FTL>`)

	event := g.Events["A"]
	if event.Fight != "PIRATE" {
		t.Fatalf("expected fight, got %q", event.Fight)
	}
	if len(event.Outcomes) != 1 {
		t.Fatalf("unexpected outcomes: %+v", event.Outcomes)
	}
	outcome := event.Outcomes[0]
	if outcome.HTML != "<strong>Fight</strong> a %s" {
		t.Fatalf("unexpected markup: %q", outcome.HTML)
	}
	if outcome.Link == nil || outcome.Link.Kind != KindShip || outcome.Link.Name != "PIRATE" {
		t.Fatalf("unexpected link: %+v", outcome.Link)
	}
}

func TestOutcomesEndFight(t *testing.T) {
	g, _ := build(t, `<FTL>
		<event name="A"><ship hostile="false"/></event>
	</FTL>`)
	event := g.Events["A"]
	if event.Fight != "" {
		t.Fatalf("expected no fight, got %q", event.Fight)
	}
	if got := event.Outcomes[0].HTML; got != "<strong>End Fight</strong>" {
		t.Fatalf("got %q", got)
	}
}
