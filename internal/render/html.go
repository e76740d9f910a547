package render

import (
	"fmt"
	"html"
	"io"

	"starsheet/internal/graph"
)

// HTMLSink writes the document as a single self-contained HTML page.
type HTMLSink struct {
	w     io.Writer
	Title string
	Intro string
	err   error
}

var _ Sink = (*HTMLSink)(nil)

func NewHTMLSink(w io.Writer, title string) *HTMLSink {
	return &HTMLSink{w: w, Title: title}
}

// Err returns the first write error, if any. Write failures do not abort
// the traversal; the caller checks once at the end.
func (s *HTMLSink) Err() error {
	return s.err
}

func (s *HTMLSink) printf(format string, args ...any) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format, args...)
}

const pageStyle = `
        body {
            /* More readable text */
            font-family: sans-serif;
            color: #222;
            max-width: 50em;
            margin: 0 auto;
        }

        /* The "visited" colors for links is not very useful */
        a, a:visited { color: rgb(0, 0, 238); }

        /* Many of our link names contain underscores, which look weird
           when underlined */
        a { text-decoration: none; }
        a:hover, a:focus { text-decoration: underline; }

        h2 {
            font-size: medium;
        }

        /* Our notation for lists */
        .texts  { list-style: circle;  } /* RNG text alternatives */
        .random { list-style: circle;  } /* RNG event alternatives */
        .result { list-style: disc;    } /* Event outcomes */
        .choice { list-style: decimal; } /* Player choice */
        .fight  { list-style: square;  } /* Ship fight */

        ul.fight > li {
            margin-top: 10px;
            margin-bottom: 10px;
        }

        ul.texts {
            padding-left: 0px;
        }

        .indent {
            padding-left: 20px;
        }

        .blue {
            color: #10aee8;
        }

        .inner { display: none; }
        .showchildren .inner { display: block; }
`

const pageScript = `
        var toggle = document.getElementById('showinner')
        update_showhidden();
        toggle.addEventListener('change', update_showhidden);

        function update_showhidden() {
            if (toggle.checked) {
                document.body.className = 'showchildren';
            } else {
                document.body.className = '';
            }
        }
`

func (s *HTMLSink) Prologue() {
	s.printf("<!doctype html>\n<html>\n<head>\n    <meta charset=\"utf-8\">\n")
	s.printf("    <title>%s</title>\n", html.EscapeString(s.Title))
	s.printf("    <style>%s    </style>\n</head>\n<body>\n", pageStyle)
	s.printf("    <h1>%s</h1>\n", html.EscapeString(s.Title))
	if s.Intro != "" {
		s.printf("    <p>%s\n", html.EscapeString(s.Intro))
	}
	s.printf("    <p>Use Ctrl-F to find the event you are looking for." +
		" Some events may be test/debug content that cannot be encountered in normal play.\n")
	s.printf("    <h2>Settings</h2>\n    <ul style=\"list-style:none\">\n" +
		"        <li><input type=\"checkbox\" id=\"showinner\">" +
		"<label for=\"showinner\">Show full text for event responses</label>\n    </ul>\n")
	s.printf("    <script>%s    </script>\n", pageScript)
}

func (s *HTMLSink) Epilogue() {
	s.printf("</body>\n</html>\n")
}

func (s *HTMLSink) SectionHeading(title string) {
	s.printf("<h1>%s</h1>\n", html.EscapeString(title))
}

func (s *HTMLSink) Anchor(kind graph.Kind, name string) {
	anchor := AnchorID(kind, name)
	s.printf("<h2 id=\"%s\">%s</h2>\n", html.EscapeString(anchor), html.EscapeString(name))
}

func (s *HTMLSink) BeginIndent() {
	s.printf("<div class=\"indent\">\n")
}

func (s *HTMLSink) EndIndent() {
	s.printf("</div>\n")
}

func (s *HTMLSink) EventText(markup string, inner bool) {
	if inner {
		s.printf("<div class=\"inner\">%s</div>\n", markup)
	} else {
		s.printf("%s\n", markup)
	}
}

func (s *HTMLSink) BeginOutcomes() {
	s.printf("<ul class=\"result\">\n")
}

func (s *HTMLSink) Outcome(markup string) {
	s.printf("<li>%s\n", markup)
}

func (s *HTMLSink) EndOutcomes() {
	s.printf("</ul>\n")
}

func (s *HTMLSink) BeginChoices() {
	s.printf("<ol class=\"choice\">\n")
}

func (s *HTMLSink) BeginChoice(label string, blue bool) {
	if blue {
		s.printf("<li><em class=\"blue\">%s</em>\n<div>\n", html.EscapeString(label))
	} else {
		s.printf("<li><em>%s</em>\n<div>\n", html.EscapeString(label))
	}
}

func (s *HTMLSink) EndChoice() {
	s.printf("</div>\n")
}

func (s *HTMLSink) EndChoices() {
	s.printf("</ol>\n")
}

func (s *HTMLSink) BeginCases() {
	s.printf("<ul class=\"random\">\n")
}

func (s *HTMLSink) Case(weight, total int) {
	s.printf("<li> %d/%d\n", weight, total)
}

func (s *HTMLSink) EndCases() {
	s.printf("</ul>\n")
}

func (s *HTMLSink) BeginFight() {
	s.printf("<ul class=\"fight\">\n")
}

func (s *HTMLSink) BeginSlot(label string) {
	s.printf("<li><em>%s</em>\n<div>\n", html.EscapeString(label))
}

func (s *HTMLSink) EndSlot() {
	s.printf("</div>\n")
}

func (s *HTMLSink) EndFight() {
	s.printf("</ul>\n")
}

func (s *HTMLSink) GoTo(kind graph.Kind, name string) {
	s.printf("<ul class=\"result\"><li>Go to %s</ul>\n", s.InlineLink(kind, name))
}

func (s *HTMLSink) InlineLink(kind graph.Kind, name string) string {
	anchor := AnchorID(kind, name)
	return fmt.Sprintf("<a href=\"#%s\">%s</a>", html.EscapeString(anchor), html.EscapeString(name))
}
