package cli

import "github.com/Irfan-Ullah-cs/jsonsubschema-with-semantic-check/semantic"

// builtinOntology resolves a --ontology name to a preconfigured semantic
// resolver, so common domains don't need a --graph file on disk. The "qudt"
// graph below is grounded in the spec's S6 scenario
// (quantitykind:ThermodynamicTemperature narrower than quantitykind:Temperature).
func builtinOntology(name string) (semantic.Resolver, bool) {
	switch name {
	case "qudt":
		return qudtGraph(), true
	default:
		return nil, false
	}
}

func qudtGraph() *semantic.Graph {
	g := semantic.NewGraph()
	g.AddPrefixes(map[string]string{
		"quantitykind": "http://qudt.org/vocab/quantitykind/",
		"unit":         "http://qudt.org/vocab/unit/",
	})
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	must(g.AddBroader("quantitykind:ThermodynamicTemperature", "quantitykind:Temperature"))
	must(g.AddBroader("quantitykind:CelsiusTemperature", "quantitykind:Temperature"))
	must(g.AddBroader("quantitykind:Temperature", "quantitykind:Dimensionless"))
	must(g.AddBroader("quantitykind:Length", "quantitykind:Dimensionless"))
	must(g.AddBroader("quantitykind:Mass", "quantitykind:Dimensionless"))
	return g
}
