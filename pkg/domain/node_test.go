package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeadingLevel(t *testing.T) {
	assert.Equal(t, 1, HeadingLevel(KindHeading1))
	assert.Equal(t, 6, HeadingLevel(KindHeading6))
	assert.Equal(t, 0, HeadingLevel("h7"))
	assert.Equal(t, 0, HeadingLevel(KindParagraph))
	assert.Equal(t, 0, HeadingLevel(KindHeader))
}

func TestNode_PlainText(t *testing.T) {
	n := &Node{Kind: KindParagraph, Text: "Run ", Children: []*Node{
		{Kind: KindCode, Text: "completor"},
		{Kind: KindText, Text: " now."},
	}}
	assert.Equal(t, "Run completor now.", n.PlainText())

	var empty *Node
	assert.Equal(t, "", empty.PlainText())
	assert.Equal(t, "", empty.Attr(AttrHref))
}

func TestOverride_IsZero(t *testing.T) {
	var nilOverride *Override
	assert.True(t, nilOverride.IsZero())
	assert.True(t, (&Override{}).IsZero())
	assert.False(t, (&Override{Isolate: true}).IsZero())
	assert.False(t, (&Override{Transform: "plain"}).IsZero())
}
