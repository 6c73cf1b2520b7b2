package slide

// Find searches shapes depth-first, descending into groups, and returns the
// first shape whose name matches exactly. It returns nil when no shape matches.
func Find(shapes []Shape, name string) Shape {
	for _, shape := range shapes {
		if shape.Name() == name {
			return shape
		}
		if shape.Kind() == KindGroup {
			if found := Find(shape.Children(), name); found != nil {
				return found
			}
		}
	}
	return nil
}

// Walk visits every shape depth-first, parents before children
func Walk(shapes []Shape, visit func(Shape)) {
	for _, shape := range shapes {
		visit(shape)
		if shape.Kind() == KindGroup {
			Walk(shape.Children(), visit)
		}
	}
}
