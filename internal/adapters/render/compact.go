package render

import "strings"

// The compact encoding joins sibling scalar fields with a horizontal tab.
// Tabs tokenize as a single token for the downstream consumers this
// encoding targets, where a comma tends to merge into multi-token runs
// with the surrounding text.
const compactDelimiter = "\t"

const indentUnit = "  "

// encodeCompact renders the tab-delimited compact encoding. Consecutive
// scalar-valued keys of one mapping collapse onto a single line; nested
// mappings and arrays open their own indented block.
func encodeCompact(node Node) string {
	var b strings.Builder

	switch n := node.(type) {
	case *Object:
		compactObject(&b, n, 0)
	case Array:
		compactArray(&b, n, 0)
	default:
		writeLine(&b, 0, scalarLiteral(n))
	}

	return b.String()
}

func compactObject(b *strings.Builder, object *Object, depth int) {
	var run []string
	flush := func() {
		if len(run) == 0 {
			return
		}
		writeLine(b, depth, strings.Join(run, compactDelimiter))
		run = nil
	}

	for _, field := range object.Fields {
		switch value := field.Value.(type) {
		case *Object:
			if len(value.Fields) == 0 {
				run = append(run, field.Key+": {}")
				continue
			}
			flush()
			writeLine(b, depth, field.Key+":")
			compactObject(b, value, depth+1)
		case Array:
			if len(value) == 0 {
				run = append(run, field.Key+": []")
				continue
			}
			flush()
			writeLine(b, depth, field.Key+":")
			compactArray(b, value, depth+1)
		default:
			run = append(run, field.Key+": "+scalarLiteral(value))
		}
	}

	flush()
}

func compactArray(b *strings.Builder, array Array, depth int) {
	if allScalars(array) {
		literals := make([]string, len(array))
		for i, element := range array {
			literals[i] = scalarLiteral(element)
		}
		writeLine(b, depth, strings.Join(literals, compactDelimiter))
		return
	}

	for _, element := range array {
		switch value := element.(type) {
		case *Object:
			writeLine(b, depth, "-")
			compactObject(b, value, depth+1)
		case Array:
			writeLine(b, depth, "-")
			compactArray(b, value, depth+1)
		default:
			writeLine(b, depth, scalarLiteral(value))
		}
	}
}

func allScalars(array Array) bool {
	for _, element := range array {
		if !isScalar(element) {
			return false
		}
	}
	return true
}

func writeLine(b *strings.Builder, depth int, text string) {
	b.WriteString(strings.Repeat(indentUnit, depth))
	b.WriteString(text)
	b.WriteByte('\n')
}
