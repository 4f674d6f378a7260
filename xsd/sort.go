package xsd

import "github.com/CognitoIQ/xsdmodel/internal/dependency"

// SortClasses returns classes in dependency order: each class comes
// after the classes it extends and the classes its fields refer to.
// Classes with no dependencies between them keep their relative
// order. Reference cycles are broken at the first class visited.
func SortClasses(classes []Class) []Class {
	index := make(map[QName]int, len(classes))
	for i, c := range classes {
		index[QName{Space: c.Namespace, Local: c.Name}] = i
	}
	var graph dependency.Graph[int]
	for i := range classes {
		graph.Target(i)
		deps := append([]QName(nil), classes[i].Extensions...)
		for j := range classes[i].Attrs {
			deps = appendTypes(deps, &classes[i].Attrs[j])
		}
		for _, q := range deps {
			if j, ok := index[q]; ok && j != i {
				graph.Add(i, j)
			}
		}
	}
	result := make([]Class, 0, len(classes))
	graph.Flatten(func(i int) {
		result = append(result, classes[i])
	})
	return result
}

func appendTypes(types []QName, a *Attr) []QName {
	types = append(types, a.Types...)
	for i := range a.Choices {
		types = appendTypes(types, &a.Choices[i])
	}
	return types
}
