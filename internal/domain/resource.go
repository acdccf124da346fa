package domain

// Object is a raw resource representation as returned by the document
// service. The application layer maps it into explicit result types and
// reads only the fields the CLI presents.
type Object = map[string]any
