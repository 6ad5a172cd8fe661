package hazard

import (
	"github.com/couchcryptid/hazard-nrml-export/internal/nrml"
	"github.com/couchcryptid/hazard-nrml-export/internal/xmltree"
)

// wrapCollection implements the collection-or-flatten convention shared by
// the event-based GMF and stochastic-event-set writers. When both logic-tree
// paths are supplied, results belong to one realization and nest under a
// collection element carrying the paths. When both are absent, the document
// is a complete-logic-tree aggregate: no collection wrapper, and the single
// expected set attaches directly to the root.
func wrapCollection(root *xmltree.Element, tag, smltPath, gsimltPath string) *xmltree.Element {
	if smltPath == "" || gsimltPath == "" {
		return root
	}
	container := root.Child(tag)
	container.SetAttr(nrml.SourceModelTreePathAttr, smltPath)
	container.SetAttr(nrml.GSIMTreePathAttr, gsimltPath)
	return container
}
