package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeShow(t *testing.T) {
	raw := []byte(`{"type":"show","senderId":"gm-1","images":["a.png","b.png"],"background":"cave.png","index":1}`)

	msg, err := Decode(raw)
	require.NoError(t, err)

	show, ok := msg.(Show)
	require.True(t, ok)
	assert.Equal(t, []string{"a.png", "b.png"}, show.Images)
	assert.Equal(t, "cave.png", show.Background)
	assert.Equal(t, 1, show.Index)
	assert.Equal(t, "gm-1", show.Sender())
}

func TestDecodeUpdateDistinguishesNullFromAbsent(t *testing.T) {
	t.Run("absent background stays nil", func(t *testing.T) {
		msg, err := Decode([]byte(`{"type":"update","senderId":"gm-1","index":2}`))
		require.NoError(t, err)

		update, ok := msg.(Update)
		require.True(t, ok)
		assert.Nil(t, update.Background)
		require.NotNil(t, update.Index)
		assert.Equal(t, 2, *update.Index)
	})

	t.Run("explicit null is a clear", func(t *testing.T) {
		msg, err := Decode([]byte(`{"type":"update","senderId":"gm-1","background":null}`))
		require.NoError(t, err)

		update, ok := msg.(Update)
		require.True(t, ok)
		require.NotNil(t, update.Background)
		assert.Equal(t, "", *update.Background)
		assert.Nil(t, update.Index)
	})
}

func TestDecodeUpdateWithImages(t *testing.T) {
	msg, err := Decode([]byte(`{"type":"update","senderId":"gm-1","images":["a.png"]}`))
	require.NoError(t, err)

	update, ok := msg.(Update)
	require.True(t, ok)
	assert.Equal(t, []string{"a.png"}, update.Images)
}

func TestDecodeClose(t *testing.T) {
	msg, err := Decode([]byte(`{"type":"close","senderId":"gm-1"}`))
	require.NoError(t, err)

	c, ok := msg.(Close)
	require.True(t, ok)
	assert.Equal(t, "gm-1", c.Sender())
}

func TestDecodeUnknownType(t *testing.T) {
	_, err := Decode([]byte(`{"type":"ping","senderId":"gm-1"}`))
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestDecodeMalformedPayload(t *testing.T) {
	_, err := Decode([]byte(`{not json`))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnknownType)
}

func TestDecodeFractionalIndexTruncates(t *testing.T) {
	msg, err := Decode([]byte(`{"type":"show","senderId":"gm-1","images":["a.png"],"index":1.7}`))
	require.NoError(t, err)
	assert.Equal(t, 1, msg.(Show).Index)
}

func TestEncodeShowRefusesEmptyImages(t *testing.T) {
	_, err := Encode(Show{SenderID: "gm-1"})
	assert.Error(t, err)
}

func TestEncodeShowEmptyBackgroundIsNull(t *testing.T) {
	raw, err := Encode(Show{Images: []string{"a.png"}, SenderID: "gm-1"})
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Equal(t, "null", string(fields["background"]))
}

func TestEncodeSparseUpdateOmitsUnchangedFields(t *testing.T) {
	index := 3
	raw, err := Encode(Update{Index: &index, SenderID: "gm-1"})
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.NotContains(t, fields, "background")
	assert.NotContains(t, fields, "images")
	assert.Equal(t, "3", string(fields["index"]))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	clear := ""
	raw, err := Encode(Update{Background: &clear, SenderID: "gm-1"})
	require.NoError(t, err)

	msg, err := Decode(raw)
	require.NoError(t, err)

	update, ok := msg.(Update)
	require.True(t, ok)
	require.NotNil(t, update.Background, "a cleared backdrop survives the wire as an explicit clear")
	assert.Equal(t, "", *update.Background)
}
