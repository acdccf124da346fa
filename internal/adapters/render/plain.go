package render

import "strings"

// encodePlain renders one `key: value` line per scalar field. Nested
// mappings indent one extra level. Arrays add no indent level of their
// own: elements render at the same indentation as the array's key, and
// only mapping elements indent their fields a level deeper.
func encodePlain(node Node) string {
	var b strings.Builder

	switch n := node.(type) {
	case *Object:
		plainObject(&b, n, 0)
	case Array:
		plainElements(&b, n, 0)
	default:
		writeLine(&b, 0, scalarLiteral(n))
	}

	return b.String()
}

func plainObject(b *strings.Builder, object *Object, depth int) {
	for _, field := range object.Fields {
		switch value := field.Value.(type) {
		case *Object:
			if len(value.Fields) == 0 {
				writeLine(b, depth, field.Key+": {}")
				continue
			}
			writeLine(b, depth, field.Key+":")
			plainObject(b, value, depth+1)
		case Array:
			if len(value) == 0 {
				writeLine(b, depth, field.Key+": []")
				continue
			}
			writeLine(b, depth, field.Key+":")
			plainElements(b, value, depth)
		default:
			writeLine(b, depth, field.Key+": "+scalarLiteral(value))
		}
	}
}

func plainElements(b *strings.Builder, array Array, depth int) {
	for _, element := range array {
		switch value := element.(type) {
		case *Object:
			plainObject(b, value, depth+1)
		case Array:
			plainElements(b, value, depth)
		default:
			writeLine(b, depth, scalarLiteral(value))
		}
	}
}
