// Package termadapter renders widget state as styled terminal lines.
// Each adapter implements the setter contract for its kind plus the
// interaction source capabilities its kind can emit, so a terminal
// client can plug directly into the sync layer.
package termadapter

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/uiwire/uiwire/protocol"
)

var (
	buttonStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder())
	textStyle    = lipgloss.NewStyle().Faint(true)
	valueStyle   = lipgloss.NewStyle().Underline(true)
	checkedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	trackStyle   = lipgloss.NewStyle().Faint(true)
)

const sliderTrackWidth = 20

// Button displays a label and emits clicks.
type Button struct {
	mutex          sync.Mutex
	text           string
	clickCallbacks []func()
}

func NewButton() *Button {
	return &Button{}
}

func (self *Button) ElementKind() protocol.Kind {
	return protocol.KindButton
}

func (self *Button) SetText(text string) {
	self.mutex.Lock()
	defer self.mutex.Unlock()
	self.text = text
}

func (self *Button) Text() string {
	self.mutex.Lock()
	defer self.mutex.Unlock()
	return self.text
}

func (self *Button) OnClick(callback func()) {
	self.mutex.Lock()
	defer self.mutex.Unlock()
	self.clickCallbacks = append(self.clickCallbacks, callback)
}

// Click is the local user interaction.
func (self *Button) Click() {
	self.mutex.Lock()
	callbacks := append([]func(){}, self.clickCallbacks...)
	self.mutex.Unlock()
	for _, callback := range callbacks {
		callback()
	}
}

func (self *Button) View() string {
	return buttonStyle.Render(self.Text())
}

// Text displays read-only text.
type Text struct {
	mutex sync.Mutex
	text  string
}

func NewText() *Text {
	return &Text{}
}

func (self *Text) ElementKind() protocol.Kind {
	return protocol.KindText
}

func (self *Text) SetText(text string) {
	self.mutex.Lock()
	defer self.mutex.Unlock()
	self.text = text
}

func (self *Text) Text() string {
	self.mutex.Lock()
	defer self.mutex.Unlock()
	return self.text
}

func (self *Text) View() string {
	return textStyle.Render(self.Text())
}

// Input is a text entry field. Edits emit input events; commits emit a
// change event with the committed string.
type Input struct {
	mutex           sync.Mutex
	value           string
	inputCallbacks  []func(value string)
	changeCallbacks []func(value any)
}

func NewInput() *Input {
	return &Input{}
}

func (self *Input) ElementKind() protocol.Kind {
	return protocol.KindInput
}

func (self *Input) SetValue(value string) {
	self.mutex.Lock()
	defer self.mutex.Unlock()
	self.value = value
}

func (self *Input) Value() string {
	self.mutex.Lock()
	defer self.mutex.Unlock()
	return self.value
}

func (self *Input) OnInput(callback func(value string)) {
	self.mutex.Lock()
	defer self.mutex.Unlock()
	self.inputCallbacks = append(self.inputCallbacks, callback)
}

func (self *Input) OnChange(callback func(value any)) {
	self.mutex.Lock()
	defer self.mutex.Unlock()
	self.changeCallbacks = append(self.changeCallbacks, callback)
}

// Edit updates the local value and emits one input event, as on every
// keystroke.
func (self *Input) Edit(value string) {
	self.mutex.Lock()
	self.value = value
	callbacks := append([]func(value string){}, self.inputCallbacks...)
	self.mutex.Unlock()
	for _, callback := range callbacks {
		callback(value)
	}
}

// Commit emits one change event with the committed value, as on blur.
func (self *Input) Commit() {
	self.mutex.Lock()
	value := self.value
	callbacks := append([]func(value any){}, self.changeCallbacks...)
	self.mutex.Unlock()
	for _, callback := range callbacks {
		callback(value)
	}
}

func (self *Input) View() string {
	return valueStyle.Render(self.Value())
}

// Checkbox toggles emit change events with the new checked state.
type Checkbox struct {
	mutex           sync.Mutex
	checked         bool
	changeCallbacks []func(value any)
}

func NewCheckbox() *Checkbox {
	return &Checkbox{}
}

func (self *Checkbox) ElementKind() protocol.Kind {
	return protocol.KindCheckbox
}

func (self *Checkbox) SetChecked(checked bool) {
	self.mutex.Lock()
	defer self.mutex.Unlock()
	self.checked = checked
}

func (self *Checkbox) Checked() bool {
	self.mutex.Lock()
	defer self.mutex.Unlock()
	return self.checked
}

func (self *Checkbox) OnChange(callback func(value any)) {
	self.mutex.Lock()
	defer self.mutex.Unlock()
	self.changeCallbacks = append(self.changeCallbacks, callback)
}

// Toggle flips the local state and emits one change event.
func (self *Checkbox) Toggle() {
	self.mutex.Lock()
	self.checked = !self.checked
	checked := self.checked
	callbacks := append([]func(value any){}, self.changeCallbacks...)
	self.mutex.Unlock()
	for _, callback := range callbacks {
		callback(checked)
	}
}

func (self *Checkbox) View() string {
	if self.Checked() {
		return checkedStyle.Render("[x]")
	}
	return "[ ]"
}

// Slider renders a track with a marker and emits change events on
// release.
type Slider struct {
	mutex           sync.Mutex
	state           protocol.Slider
	changeCallbacks []func(value any)
}

func NewSlider() *Slider {
	return &Slider{}
}

func (self *Slider) ElementKind() protocol.Kind {
	return protocol.KindSlider
}

func (self *Slider) SetSlider(state protocol.Slider) {
	self.mutex.Lock()
	defer self.mutex.Unlock()
	self.state = state
}

func (self *Slider) State() protocol.Slider {
	self.mutex.Lock()
	defer self.mutex.Unlock()
	return self.state
}

func (self *Slider) OnChange(callback func(value any)) {
	self.mutex.Lock()
	defer self.mutex.Unlock()
	self.changeCallbacks = append(self.changeCallbacks, callback)
}

// Slide sets the local value and emits one change event, as on pointer
// release.
func (self *Slider) Slide(value float64) {
	self.mutex.Lock()
	self.state.Value = value
	callbacks := append([]func(value any){}, self.changeCallbacks...)
	self.mutex.Unlock()
	for _, callback := range callbacks {
		callback(value)
	}
}

func (self *Slider) View() string {
	state := self.State()
	span := state.Max - state.Min
	position := 0
	if 0 < span {
		position = int(float64(sliderTrackWidth-1) * (state.Value - state.Min) / span)
	}
	if position < 0 {
		position = 0
	}
	if sliderTrackWidth-1 < position {
		position = sliderTrackWidth - 1
	}
	track := strings.Repeat("-", position) + "o" + strings.Repeat("-", sliderTrackWidth-1-position)
	return trackStyle.Render(track) + " " + valueStyle.Render(fmt.Sprintf("%g", state.Value))
}

// Radio selection emits a change event with checked=true. Clearing the
// rest of the group is the server's call to make.
type Radio struct {
	mutex           sync.Mutex
	state           protocol.Radio
	changeCallbacks []func(value any)
}

func NewRadio() *Radio {
	return &Radio{}
}

func (self *Radio) ElementKind() protocol.Kind {
	return protocol.KindRadio
}

func (self *Radio) SetRadio(state protocol.Radio) {
	self.mutex.Lock()
	defer self.mutex.Unlock()
	self.state = state
}

func (self *Radio) State() protocol.Radio {
	self.mutex.Lock()
	defer self.mutex.Unlock()
	return self.state
}

func (self *Radio) OnChange(callback func(value any)) {
	self.mutex.Lock()
	defer self.mutex.Unlock()
	self.changeCallbacks = append(self.changeCallbacks, callback)
}

// Select marks this radio and emits one change event.
func (self *Radio) Select() {
	self.mutex.Lock()
	self.state.Checked = true
	callbacks := append([]func(value any){}, self.changeCallbacks...)
	self.mutex.Unlock()
	for _, callback := range callbacks {
		callback(true)
	}
}

func (self *Radio) View() string {
	state := self.State()
	if state.Checked {
		return checkedStyle.Render("(o)") + " " + state.Value
	}
	return "( ) " + state.Value
}

// Number is a numeric entry field emitting change events on commit.
type Number struct {
	mutex           sync.Mutex
	state           protocol.Number
	changeCallbacks []func(value any)
}

func NewNumber() *Number {
	return &Number{}
}

func (self *Number) ElementKind() protocol.Kind {
	return protocol.KindNumber
}

func (self *Number) SetNumber(state protocol.Number) {
	self.mutex.Lock()
	defer self.mutex.Unlock()
	self.state = state
}

func (self *Number) State() protocol.Number {
	self.mutex.Lock()
	defer self.mutex.Unlock()
	return self.state
}

func (self *Number) OnChange(callback func(value any)) {
	self.mutex.Lock()
	defer self.mutex.Unlock()
	self.changeCallbacks = append(self.changeCallbacks, callback)
}

// Enter sets the local value and emits one change event.
func (self *Number) Enter(value float64) {
	self.mutex.Lock()
	self.state.Value = value
	callbacks := append([]func(value any){}, self.changeCallbacks...)
	self.mutex.Unlock()
	for _, callback := range callbacks {
		callback(value)
	}
}

func (self *Number) View() string {
	return valueStyle.Render(fmt.Sprintf("%g", self.State().Value))
}
