package facts

import (
	"strings"

	"github.com/halcyonic/strata/pkg/parser"
	sitter "github.com/smacker/go-tree-sitter"
)

// param is one entry in a function's parameter list. Splat parameters and
// bare separators ("*", "/") are rendered into the signature but excluded
// from parameter and type-hint counting, as are self/cls receivers.
type param struct {
	name     string
	rendered string
	receiver bool
	typed    bool
	counted  bool
}

// collectParams walks a parameters node and renders each entry. Rendering is
// best-effort: an entry we cannot make sense of becomes "...".
func collectParams(paramsNode *sitter.Node, source []byte) []param {
	if paramsNode == nil {
		return nil
	}

	params := make([]param, 0, paramsNode.NamedChildCount())
	for i := range int(paramsNode.NamedChildCount()) {
		child := paramsNode.NamedChild(i)

		switch child.Type() {
		case "identifier":
			name := parser.GetNodeText(child, source)
			params = append(params, param{
				name:     name,
				rendered: name,
				receiver: name == "self" || name == "cls",
				counted:  true,
			})

		case "typed_parameter":
			name := exprText(child.NamedChild(0), source)
			ann := exprText(child.ChildByFieldName("type"), source)
			params = append(params, param{
				name:     name,
				rendered: name + ": " + ann,
				receiver: name == "self" || name == "cls",
				typed:    true,
				counted:  !strings.HasPrefix(name, "*"),
			})

		case "default_parameter":
			name := exprText(child.ChildByFieldName("name"), source)
			value := exprText(child.ChildByFieldName("value"), source)
			params = append(params, param{
				name:     name,
				rendered: name + " = " + value,
				counted:  true,
			})

		case "typed_default_parameter":
			name := exprText(child.ChildByFieldName("name"), source)
			ann := exprText(child.ChildByFieldName("type"), source)
			value := exprText(child.ChildByFieldName("value"), source)
			params = append(params, param{
				name:     name,
				rendered: name + ": " + ann + " = " + value,
				typed:    true,
				counted:  true,
			})

		case "list_splat_pattern", "dictionary_splat_pattern":
			params = append(params, param{rendered: exprText(child, source)})

		case "keyword_separator", "positional_separator":
			params = append(params, param{rendered: exprText(child, source)})

		default:
			params = append(params, param{rendered: "..."})
		}
	}

	return params
}

// renderSignature builds "name(params) -> return" from collected parameters.
func renderSignature(name string, params []param, returnType *sitter.Node, source []byte) string {
	rendered := make([]string, len(params))
	for i, p := range params {
		rendered[i] = p.rendered
	}

	sig := name + "(" + strings.Join(rendered, ", ") + ")"
	if returnType != nil {
		sig += " -> " + exprText(returnType, source)
	}
	return sig
}

// exprText returns a node's source text with internal whitespace collapsed,
// so multi-line defaults and annotations render on one line.
func exprText(node *sitter.Node, source []byte) string {
	text := parser.GetNodeText(node, source)
	if text == "" {
		return "..."
	}
	return strings.Join(strings.Fields(text), " ")
}

// stringLiteralValue strips any prefix letters and quotes from a Python
// string literal, returning its raw content.
func stringLiteralValue(text string) string {
	i := 0
	for i < len(text) && text[i] != '"' && text[i] != '\'' {
		i++
	}
	text = text[i:]

	for _, quote := range []string{`"""`, `'''`, `"`, `'`} {
		if len(text) >= 2*len(quote) && strings.HasPrefix(text, quote) && strings.HasSuffix(text, quote) {
			return text[len(quote) : len(text)-len(quote)]
		}
	}
	return text
}

// docstringSummary returns the first line of a docstring, trimmed and capped
// at 100 characters.
func docstringSummary(doc string) string {
	line, _, _ := strings.Cut(doc, "\n")
	line = strings.TrimSpace(line)
	if len(line) > 100 {
		line = line[:100]
	}
	return line
}
