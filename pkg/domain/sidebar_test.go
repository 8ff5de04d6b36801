package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermalink(t *testing.T) {
	assert.Equal(t, "/completor/fmu/run_completor", Permalink("/completor/", "/fmu/run_completor"))
	assert.Equal(t, "/about/description", Permalink("", "about/description"))
	assert.Equal(t, "/", Permalink("/", "/"))
}

func TestSidebar(t *testing.T) {
	pages := Sidebar("/completor", []*Page{
		{ID: "fmu/run_completor", Title: "Running Completor in FMU", SidebarPosition: 3},
		{ID: "fmu/general_preparations", Title: "General Preparation", SidebarPosition: 2},
		{ID: "fmu/index", SidebarPosition: 2, Slug: "/fmu/"},
	})

	require.Len(t, pages, 3)
	assert.Equal(t, "fmu/general_preparations", pages[0].ID)
	assert.Equal(t, "fmu/index", pages[1].ID)
	assert.Equal(t, "fmu/run_completor", pages[2].ID)

	assert.Equal(t, "/completor/fmu/general_preparations", pages[0].Permalink)
	assert.Equal(t, "/completor/fmu", pages[1].Permalink)
	assert.Equal(t, "fmu/index", pages[1].Title, "title defaults to the id")

	assert.Nil(t, pages[0].Previous)
	assert.Equal(t, &Link{Title: "fmu/index", Permalink: "/completor/fmu"}, pages[0].Next)
	assert.Equal(t, "General Preparation", pages[1].Previous.Title)
	assert.Equal(t, "Running Completor in FMU", pages[1].Next.Title)
	assert.Nil(t, pages[2].Next)
}
