package command

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/davidahmann/intake/internal/request"
)

func TestClassifyHelpWinsOverEverything(t *testing.T) {
	for _, text := range []string{
		"help",
		"commands",
		"help me update foo to Completed",
		"status? no idea, help",
	} {
		cmd := Classify(text)
		assert.Equal(t, Help, cmd.Kind, "text %q", text)
	}
}

func TestClassifyCategoryTagsEveryCommand(t *testing.T) {
	assert.Equal(t, request.BizDev, Classify("bd help").Category)
	assert.Equal(t, request.BizDev, Classify("status bd").Category)
	assert.Equal(t, request.BizDev, Classify("update acme to Added to CRM bd").Category)
	assert.Equal(t, request.Feature, Classify("status").Category)
	assert.Equal(t, request.Feature, Classify("any old thread").Category)
}

func TestClassifyUpdate(t *testing.T) {
	cmd := Classify("update foo to Completed")
	assert.Equal(t, Update, cmd.Kind)
	assert.Equal(t, "foo", cmd.Query)
	assert.Equal(t, "Completed", cmd.NewStatus)

	cmd = Classify(`please update "dark mode" to 'In Progress'`)
	assert.Equal(t, Update, cmd.Kind)
	assert.Equal(t, "dark mode", cmd.Query)
	assert.Equal(t, "In Progress", cmd.NewStatus)

	// Case-insensitive keyword, original casing preserved in the parts.
	cmd = Classify("UPDATE Foo Widget TO completed")
	assert.Equal(t, Update, cmd.Kind)
	assert.Equal(t, "Foo Widget", cmd.Query)
	assert.Equal(t, "completed", cmd.NewStatus)
}

func TestClassifyUpdateFallsThroughOnBadSplit(t *testing.T) {
	// " to " present but the split yields an empty status: not an
	// update. "status" keyword catches it instead.
	cmd := Classify("update status to ")
	assert.Equal(t, Status, cmd.Kind)

	// No status keyword either: default create.
	cmd = Classify("update the answer to ")
	assert.Equal(t, Create, cmd.Kind)
}

func TestClassifyStatus(t *testing.T) {
	cmd := Classify("status")
	assert.Equal(t, Status, cmd.Kind)
	assert.False(t, cmd.IncludeDone)

	cmd = Classify("status all")
	assert.True(t, cmd.IncludeDone)

	// The terminal-status keyword also reveals finished records.
	cmd = Classify("status including completed")
	assert.True(t, cmd.IncludeDone)

	cmd = Classify("status bd")
	assert.Equal(t, request.BizDev, cmd.Category)
	assert.False(t, cmd.IncludeDone)
}

func TestClassifyDefaultsToCreate(t *testing.T) {
	cmd := Classify("The export button is missing on the reports page")
	assert.Equal(t, Create, cmd.Kind)
	assert.Equal(t, request.Feature, cmd.Category)
}
