/*
Package components resolves which rendering components are visible at each
point of a content tree.

A Map binds symbolic names ("h1", "p", "code", "wrapper"...) to Component
implementations. Any node may declare a Frame that changes the map for its
subtree, either by merging a Literal map on top of what it inherits or by
applying a Transform to it. A frame with DisableParent set ignores every
ancestor and starts from an empty map.

The effective map is always passed explicitly: callers thread the map returned
by Resolve into the traversal of the node's children. Nothing is looked up
from ambient state.

	root := components.Map{"p": p1, "h1": h1}
	child := components.Declare(root, components.Literal{"p": p2}, false)
	// child == {"p": p2, "h1": h1}
	leaf := components.Declare(child, components.Literal{"p": p3}, true)
	// leaf == {"p": p3}
*/
package components
