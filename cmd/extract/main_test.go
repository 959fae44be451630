package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mathfig/diagram"
	"mathfig/markdown"
)

const lesson = "Intro\n\n```mathfig\ntoolName: semicircle\nparameters:\n  radius: 4\n```\n\n" +
	"```mathfig\n[{\"toolName\": \"numberLine\"}, {\"toolName\": \"rhombusAngles\"}]\n```\n"

func TestExtract(t *testing.T) {
	entries, err := extract(markdown.NewScanner(lesson).FindFigureBlocks(), true)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, 3, entries[0].Line)
	assert.Equal(t, "semicircle", entries[0].ToolName)
	assert.Equal(t, 4, entries[0].Parameters["radius"])
	assert.Equal(t, 9, entries[1].Line)
	assert.Equal(t, "rhombusAngles", entries[2].ToolName)

	data, err := json.Marshal(entries[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"line": 3, "toolName": "semicircle", "parameters": {"radius": 4}}`, string(data))
}

func TestExtractEmpty(t *testing.T) {
	entries, err := extract(nil, false)
	require.NoError(t, err)
	data, err := json.Marshal(entries)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestExtractErrors(t *testing.T) {
	blocks := []markdown.FigureBlock{{StartLine: 6, Content: "toolName: semicircle\nparameters:\n  radius: -2"}}
	_, err := extract(blocks, false)
	require.NoError(t, err, "parameters are only checked when asked")

	_, err = extract(blocks, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 7")
	assert.ErrorIs(t, err, diagram.ErrValidation)

	_, err = extract([]markdown.FigureBlock{{Content: "just prose"}}, false)
	assert.Error(t, err)
}
