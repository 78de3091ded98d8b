// Package cli implements the subschema CLI surface (spec §6): two
// positional schema file paths, --ontology/--graph/--require-ontology
// flags, an --explain trace, and a version subcommand. It follows the
// retrieval pack's cobra-based CLI idiom (lacquerai-lacquer's internal/cli)
// but keeps the whole surface behind a single testable Run(args, stdin,
// stdout, stderr) int entry point instead of package-level global state, so
// exit codes can be asserted in tests without subprocesses.
package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Irfan-Ullah-cs/jsonsubschema-with-semantic-check/internal/config"
	"github.com/Irfan-Ullah-cs/jsonsubschema-with-semantic-check/jsonsubschema"
	"github.com/Irfan-Ullah-cs/jsonsubschema-with-semantic-check/semantic"
)

// Exit codes (spec §6): 0 subtype holds, 1 does not hold, 2 input error, 3
// Unsupported.
const (
	ExitHolds       = 0
	ExitDoesNotHold = 1
	ExitInputError  = 2
	ExitUnsupported = 3
)

type exitError struct{ code int }

func (e *exitError) Error() string { return fmt.Sprintf("exit code %d", e.code) }

// Run parses args and executes the subschema CLI, returning a process exit
// code. It never calls os.Exit itself, making it directly testable.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd(stdin, stdout, stderr)
	root.SetArgs(args)
	err := root.Execute()
	if err == nil {
		return ExitHolds
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	fmt.Fprintln(stderr, err)
	return ExitInputError
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var ontology, graphFile string
	var requireOntology, explain, debug bool

	root := &cobra.Command{
		Use:           "subschema <schema1> <schema2>",
		Short:         "Decide JSON Schema subtype relations (s1 <: s2)",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			config.SetDebug(debug)
			if debug {
				jsonsubschema.SetDebug(stderr)
			}
			return runCheck(cmd, args, ontology, graphFile, requireOntology, explain)
		},
	}
	root.Flags().StringVar(&ontology, "ontology", "", "preconfigured ontology name (see internal/cli/ontology.go)")
	root.Flags().StringVar(&graphFile, "graph", "", "path to a custom YAML ontology graph file")
	root.Flags().BoolVar(&requireOntology, "require-ontology", false, "error out if stype is used without an ontology loaded")
	root.Flags().BoolVar(&explain, "explain", false, "print the structured decision trace instead of just true/false")
	root.Flags().BoolVar(&debug, "debug", false, "enable structured debug tracing on stderr")
	root.AddCommand(newVersionCmd())
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root
}

func runCheck(cmd *cobra.Command, args []string, ontology, graphFile string, requireOntology, explain bool) error {
	doc1, err := loadSchemaFile(args[0])
	if err != nil {
		return fail(cmd, ExitInputError, "reading %s: %v", args[0], err)
	}
	doc2, err := loadSchemaFile(args[1])
	if err != nil {
		return fail(cmd, ExitInputError, "reading %s: %v", args[1], err)
	}

	resolver, err := buildResolver(ontology, graphFile)
	if err != nil {
		return fail(cmd, ExitInputError, "%v", err)
	}
	if requireOntology && resolver == nil && (usesStype(doc1) || usesStype(doc2)) {
		return fail(cmd, ExitInputError, "schema uses stype but no --ontology/--graph was given (--require-ontology set)")
	}

	exp, err := jsonsubschema.Explain(doc1, doc2, resolver)
	if err != nil {
		var unsupported *jsonsubschema.Unsupported
		if errors.As(err, &unsupported) {
			return fail(cmd, ExitUnsupported, "%v", err)
		}
		return fail(cmd, ExitInputError, "%v", err)
	}

	if explain {
		fmt.Fprintf(cmd.OutOrStdout(), "semantic preflight: %s\nstructural verdict: %s\nholds: %v\n",
			exp.SemanticPreflight, exp.StructuralVerdict, exp.Holds)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), exp.Holds)
	}
	if !exp.Holds {
		return &exitError{ExitDoesNotHold}
	}
	return nil
}

func fail(cmd *cobra.Command, code int, format string, args ...any) error {
	fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
	return &exitError{code}
}

func loadSchemaFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func usesStype(doc any) bool {
	switch x := doc.(type) {
	case map[string]any:
		if _, ok := x["stype"]; ok {
			return true
		}
		for _, v := range x {
			if usesStype(v) {
				return true
			}
		}
	case []any:
		for _, v := range x {
			if usesStype(v) {
				return true
			}
		}
	}
	return false
}

func buildResolver(ontology, graphFile string) (semantic.Resolver, error) {
	if graphFile != "" {
		data, err := os.ReadFile(graphFile)
		if err != nil {
			return nil, fmt.Errorf("reading graph file: %w", err)
		}
		g := semantic.NewGraph()
		if err := g.Load(data, yaml.Unmarshal); err != nil {
			return nil, fmt.Errorf("loading ontology graph: %w", err)
		}
		return g, nil
	}
	if ontology != "" {
		g, ok := builtinOntology(ontology)
		if !ok {
			return nil, fmt.Errorf("unknown ontology %q", ontology)
		}
		return g, nil
	}
	return nil, nil
}
