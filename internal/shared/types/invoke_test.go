package types

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseKeepsNullData(t *testing.T) {
	var path *string
	data, err := json.Marshal(Success("inv_1", path))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"inv_1","ok":true,"data":null}`, string(data))
}

func TestFailureCarriesErrorText(t *testing.T) {
	resp := Failure("inv_2", errors.New("failed to read file: not found"))

	assert.False(t, resp.OK)
	assert.Nil(t, resp.Data)
	assert.Equal(t, "failed to read file: not found", resp.Error)
}

func TestResultFrameFlattensResponse(t *testing.T) {
	frame := NewResultFrame(Success("inv_3", "/tmp/a.txt"), 42)

	data, err := json.Marshal(frame)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"result","id":"inv_3","ok":true,"data":"/tmp/a.txt","timestamp":42}`, string(data))
}

func TestFrameRequest(t *testing.T) {
	var frame Frame
	require.NoError(t, json.Unmarshal([]byte(`{"type":"invoke","id":"7","cmd":"read_file_content","args":{"filePath":"/a"}}`), &frame))

	req := frame.Request()
	assert.Equal(t, FrameInvoke, frame.Type)
	assert.Equal(t, "7", req.ID)
	assert.Equal(t, "read_file_content", req.Cmd)
	assert.Equal(t, "/a", req.Args["filePath"])
}
