package lang

import "testing"

// FuzzParse exercises the tokenizer and parser against arbitrary input.
// Any input may fail to parse, but nothing may panic, and every
// successful parse must format deterministically.
func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		"null",
		"$id",
		"#update",
		"?",
		"-3.14",
		`"a\"b\n"`,
		"$int * $unique",
		"$entity.id",
		"$a : $t @ $x -> $y | $z = $w != $v",
		"[1, 2, 3]",
		"[$id = $id]",
		`{"id": $id, "name": $string}`,
		"{$a != $b}",
		"[[1, 2], {}]",
		`{"k": [$a | $b]}`,
	}

	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		node, err := ParseExpression(input)
		if err != nil {
			return
		}

		first := Format(node)
		if first == "" {
			t.Errorf("Format returned empty for parsed input %q", input)
		}

		if second := Format(node); second != first {
			t.Errorf("Format unstable for %q: %s then %s",
				input, first, second)
		}
	})
}
