package stencil

// voidTags are the elements that cannot have content and are rendered without a closing tag.
var voidTags = map[string]struct{}{
	`area`:   {},
	`base`:   {},
	`br`:     {},
	`col`:    {},
	`embed`:  {},
	`hr`:     {},
	`img`:    {},
	`input`:  {},
	`link`:   {},
	`meta`:   {},
	`param`:  {},
	`source`: {},
	`track`:  {},
	`wbr`:    {},
}

// IsVoid reports whether tag names a void element, such as br or input.  Tag names are case sensitive.
func IsVoid(tag string) bool {
	_, ok := voidTags[tag]
	return ok
}
