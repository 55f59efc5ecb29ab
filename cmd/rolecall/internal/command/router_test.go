package command

import (
	"testing"
)

func TestRoute(t *testing.T) {
	type result struct {
		typecheck func(a ArgParser)
		remainder string
	}

	tests := []struct {
		input string
		want  result
	}{
		{
			input: "@rolecall add red",
			want: result{
				typecheck: func(a ArgParser) { _ = a.(*AddArgs) },
				remainder: " red",
			},
		},
		{
			input: "@rolecall remove deep purple",
			want: result{
				typecheck: func(a ArgParser) { _ = a.(*RemoveArgs) },
				remainder: " deep purple",
			},
		},
		{
			input: "@rolecall list",
			want: result{
				typecheck: func(a ArgParser) { _ = a.(*ListArgs) },
				remainder: "",
			},
		},
		{
			input: "@rolecall mine",
			want: result{
				typecheck: func(a ArgParser) { _ = a.(*MineArgs) },
				remainder: "",
			},
		},
		{
			input: "@rolecall top",
			want: result{
				typecheck: func(a ArgParser) { _ = a.(*TopArgs) },
				remainder: "",
			},
		},
		{
			input: "@rolecall menu",
			want: result{
				typecheck: func(a ArgParser) { _ = a.(*MenuArgs) },
				remainder: "",
			},
		},
		{
			input: "@rolecall help",
			want: result{
				typecheck: func(a ArgParser) { _ = a.(*HelpArgs) },
				remainder: "",
			},
		},
	}

	router := NewRouter("@rolecall")

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			args, remainder := router.Route(tt.input)

			if args == nil {
				t.Fatal("expected a route match")
			}

			tt.want.typecheck(args)

			if remainder != tt.want.remainder {
				t.Errorf("want remainder=%q, got remainder=%q", tt.want.remainder, remainder)
			}
		})
	}
}

func TestRouteIgnoresUnaddressedMessages(t *testing.T) {
	router := NewRouter("@rolecall")

	for _, input := range []string{
		"add red",
		"@somebody add red",
		"@rolecall addendum red",
		"hello there",
	} {
		t.Run(input, func(t *testing.T) {
			args, _ := router.Route(input)
			if args != nil {
				t.Errorf("expected no match, got %T", args)
			}
		})
	}
}

func TestRegisterRejectsBadSpecs(t *testing.T) {
	tests := []struct {
		desc string
		spec Spec
	}{
		{
			desc: "missing name",
			spec: Spec{Usage: "x", Description: "x", New: func() ArgParser { return new(ListArgs) }},
		},
		{
			desc: "missing description",
			spec: Spec{Name: "x", Usage: "x", New: func() ArgParser { return new(ListArgs) }},
		},
		{
			desc: "missing usage",
			spec: Spec{Name: "x", Description: "x", New: func() ArgParser { return new(ListArgs) }},
		},
		{
			desc: "missing constructor",
			spec: Spec{Name: "x", Usage: "x", Description: "x"},
		},
		{
			desc: "required after optional",
			spec: Spec{
				Name:        "x",
				Usage:       "x [limit] <role>",
				Description: "x",
				New:         func() ArgParser { return new(ListArgs) },
			},
		},
		{
			desc: "argument after rest argument",
			spec: Spec{
				Name:        "x",
				Usage:       "x <*roles> <limit>",
				Description: "x",
				New:         func() ArgParser { return new(ListArgs) },
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			router := NewRouter("@rolecall")
			if err := router.Register(tt.spec); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestSpecsKeepsRegistrationOrder(t *testing.T) {
	router := NewRouter("@rolecall")

	want := []string{"add", "remove", "list", "mine", "top", "menu", "help"}
	specs := router.Specs()

	if len(specs) != len(want) {
		t.Fatalf("want %d specs, got %d", len(want), len(specs))
	}
	for i, name := range want {
		if specs[i].Name != name {
			t.Errorf("spec %d: want %q, got %q", i, name, specs[i].Name)
		}
	}
}
