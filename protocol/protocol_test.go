package protocol

import (
	"errors"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestUnmarshalInit(t *testing.T) {
	data := []byte(`{"type":"init","elements":[{"id":"form.submit","kind":"button","text":"Go"},{"id":"form.name","kind":"input","value":"Ann"}]}`)
	message, err := UnmarshalServerMessage(data)
	assert.Equal(t, err, nil)

	init, ok := message.(*Init)
	assert.Equal(t, ok, true)
	assert.Equal(t, len(init.Elements), 2)
	assert.Equal(t, init.Elements[0], &Button{Id: "form.submit", Text: "Go"})
	assert.Equal(t, init.Elements[1], &Input{Id: "form.name", Value: "Ann"})
}

func TestUnmarshalUpdate(t *testing.T) {
	data := []byte(`{"type":"update","id":"settings.volume","element":{"kind":"slider","id":"settings.volume","value":75,"min":0,"max":100,"step":null}}`)
	message, err := UnmarshalServerMessage(data)
	assert.Equal(t, err, nil)

	update, ok := message.(*Update)
	assert.Equal(t, ok, true)
	assert.Equal(t, update.Id, "settings.volume")
	slider, ok := update.Element.(*Slider)
	assert.Equal(t, ok, true)
	assert.Equal(t, slider.Value, 75.0)
	assert.Equal(t, slider.Max, 100.0)
	assert.Equal(t, slider.Step, (*float64)(nil))
}

func TestUnmarshalAllKinds(t *testing.T) {
	frames := []struct {
		frame string
		kind  Kind
	}{
		{`{"kind":"button","id":"a","text":"t"}`, KindButton},
		{`{"kind":"text","id":"a","text":"t"}`, KindText},
		{`{"kind":"input","id":"a","value":"v"}`, KindInput},
		{`{"kind":"checkbox","id":"a","checked":true}`, KindCheckbox},
		{`{"kind":"slider","id":"a","value":1,"min":0,"max":2,"step":0.5}`, KindSlider},
		{`{"kind":"radio","id":"a","name":"g","value":"v","checked":false}`, KindRadio},
		{`{"kind":"number","id":"a","value":1,"min":null,"max":null,"step":null}`, KindNumber},
	}
	for _, frame := range frames {
		element, err := UnmarshalElement([]byte(frame.frame))
		assert.Equal(t, err, nil)
		assert.Equal(t, element.ElementKind(), frame.kind)
		assert.Equal(t, element.ElementId(), "a")
	}
}

func TestMarshalOutbound(t *testing.T) {
	data, err := MarshalClientMessage(&ClickEvent{Id: "form.submit"})
	assert.Equal(t, err, nil)
	assert.Equal(t, string(data), `{"type":"click","id":"form.submit"}`)

	data, err = MarshalClientMessage(&InputEvent{Id: "form.name", Value: "Ann"})
	assert.Equal(t, err, nil)
	assert.Equal(t, string(data), `{"type":"input","id":"form.name","value":"Ann"}`)

	data, err = MarshalClientMessage(&ChangeEvent{Id: "opts.dark", Value: true})
	assert.Equal(t, err, nil)
	assert.Equal(t, string(data), `{"type":"change","id":"opts.dark","value":true}`)

	data, err = MarshalClientMessage(&ChangeEvent{Id: "settings.volume", Value: 75.0})
	assert.Equal(t, err, nil)
	assert.Equal(t, string(data), `{"type":"change","id":"settings.volume","value":75}`)
}

func TestMarshalRoundTrip(t *testing.T) {
	step := 0.5
	update := &Update{
		Id: "settings.volume",
		Element: &Slider{
			Id:    "settings.volume",
			Value: 75,
			Min:   0,
			Max:   100,
			Step:  &step,
		},
	}
	data, err := MarshalServerMessage(update)
	assert.Equal(t, err, nil)

	message, err := UnmarshalServerMessage(data)
	assert.Equal(t, err, nil)
	assert.Equal(t, message, update)
}

func TestUnmarshalMalformed(t *testing.T) {
	_, err := UnmarshalServerMessage([]byte(`{not json`))
	assert.Equal(t, errors.Is(err, ErrMalformedMessage), true)

	_, err = UnmarshalServerMessage([]byte(`{"type":"destroy","id":"a"}`))
	assert.Equal(t, errors.Is(err, ErrMalformedMessage), true)

	_, err = UnmarshalServerMessage([]byte(`{"type":"update","id":"a"}`))
	assert.Equal(t, errors.Is(err, ErrMalformedMessage), true)

	_, err = UnmarshalClientMessage([]byte(`{"type":"input","id":"a","value":42}`))
	assert.Equal(t, errors.Is(err, ErrMalformedMessage), true)
}

func TestUnmarshalUnknownKind(t *testing.T) {
	// an update for an unknown kind is ignorable, not malformed
	_, err := UnmarshalServerMessage([]byte(`{"type":"update","id":"a","element":{"kind":"tabs","id":"a"}}`))
	assert.Equal(t, errors.Is(err, ErrUnknownKind), true)
	assert.Equal(t, errors.Is(err, ErrMalformedMessage), false)

	// unknown kinds inside an init are dropped, the rest decode
	data := []byte(`{"type":"init","elements":[{"kind":"tabs","id":"a"},{"kind":"text","id":"b","text":"t"}]}`)
	message, err := UnmarshalServerMessage(data)
	assert.Equal(t, err, nil)
	init := message.(*Init)
	assert.Equal(t, len(init.Elements), 1)
	assert.Equal(t, init.Elements[0].ElementId(), "b")
}

func TestUnmarshalClientMessage(t *testing.T) {
	message, err := UnmarshalClientMessage([]byte(`{"type":"click","id":"counter"}`))
	assert.Equal(t, err, nil)
	assert.Equal(t, message, &ClickEvent{Id: "counter"})

	message, err = UnmarshalClientMessage([]byte(`{"type":"change","id":"settings.volume","value":75}`))
	assert.Equal(t, err, nil)
	change := message.(*ChangeEvent)
	assert.Equal(t, change.Value, 75.0)
}
