package console

import (
	"fmt"
	"strings"
)

const answerPrompt = " > "

// Choice is one selectable option. Operators may answer with either the key
// or the label.
type Choice struct {
	Key   string
	Label string
}

// Confirm asks a yes/no question.
func (o *IO) Confirm(question string, def bool) bool {
	hint := "no"
	if def {
		hint = "yes"
	}
	o.question(fmt.Sprintf("%s (yes/no) [%s]:", question, hint))
	if !o.interactive {
		o.Writeln(answerPrompt + hint)
		return def
	}
	for {
		ans, err := o.lines.ReadLine(answerPrompt)
		if err != nil {
			return def
		}
		switch strings.ToLower(strings.TrimSpace(ans)) {
		case "":
			return def
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
		o.Error("Please answer yes or no.")
	}
}

// Ask reads a free-text answer; an empty answer selects def.
func (o *IO) Ask(question, def string) string {
	if def != "" {
		question = fmt.Sprintf("%s [%s]:", question, def)
	}
	o.question(question)
	if !o.interactive {
		o.Writeln(answerPrompt + def)
		return def
	}
	ans, err := o.lines.ReadLine(answerPrompt)
	if err != nil {
		return def
	}
	ans = strings.TrimSpace(ans)
	if ans == "" {
		return def
	}
	return ans
}

// Choice asks the operator to pick one of choices and returns its key.
// With no default, the first key is used when no answer can be read.
func (o *IO) Choice(question string, choices []Choice, def string) string {
	if len(choices) == 0 {
		return def
	}
	fallback := def
	if fallback == "" {
		fallback = choices[0].Key
	}
	if def != "" {
		question = fmt.Sprintf("%s [%s]:", question, labelFor(choices, def))
	}
	o.question(question)
	for _, c := range choices {
		fmt.Fprintf(o.out, "  [%s] %s\n", o.styles.key.Render(c.Key), c.Label)
	}
	if !o.interactive {
		o.Writeln(answerPrompt + fallback)
		return fallback
	}
	for {
		ans, err := o.lines.ReadLine(answerPrompt)
		if err != nil {
			return fallback
		}
		ans = strings.TrimSpace(ans)
		if ans == "" && def != "" {
			return def
		}
		if key, ok := matchChoice(choices, ans); ok {
			return key
		}
		o.Error(fmt.Sprintf("Value %q is invalid.", ans))
	}
}

// EnterToContinue shows message and waits for the operator to press enter.
func (o *IO) EnterToContinue(message string) {
	o.Note(message)
	if !o.interactive {
		return
	}
	_, _ = o.lines.ReadLine(" Press enter to continue... ")
}

func (o *IO) question(text string) {
	fmt.Fprintln(o.out)
	fmt.Fprintln(o.out, " "+o.styles.question.Render(text))
}

func matchChoice(choices []Choice, ans string) (string, bool) {
	if ans == "" {
		return "", false
	}
	for _, c := range choices {
		if c.Key == ans {
			return c.Key, true
		}
	}
	for _, c := range choices {
		if strings.EqualFold(c.Label, ans) {
			return c.Key, true
		}
	}
	return "", false
}

func labelFor(choices []Choice, key string) string {
	for _, c := range choices {
		if c.Key == key {
			return c.Label
		}
	}
	return key
}
