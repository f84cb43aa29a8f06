// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewFormatter(t *testing.T) {
	for _, format := range Formats() {
		formatter, err := NewFormatter(string(format))
		require.NoError(t, err)
		require.Equal(t, format, formatter.Kind())
	}

	_, err := NewFormatter("yaml")
	require.Error(t, err)
}

func TestJsonFormatter(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &JsonFormatter{}

	err := formatter.Format(struct {
		Name string `json:"name"`
	}{Name: "HttpTriggerCSharp"}, buf, nil)
	require.NoError(t, err)
	require.JSONEq(t, `{"name": "HttpTriggerCSharp"}`, buf.String())
	require.True(t, bytes.HasSuffix(buf.Bytes(), []byte("\n")))
}

func TestNoneFormatterWritesNothing(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &NoneFormatter{}

	err := formatter.Format(struct{ Name string }{Name: "x"}, buf, nil)
	require.NoError(t, err)
	require.Empty(t, buf.String())
}
