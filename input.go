package main

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/freelook/ecs"
	"github.com/milk9111/freelook/ecs/component"
)

const (
	stickDeadzone = 0.2
	// mouseSensitivity turns pixels of cursor travel into look axis units.
	mouseSensitivity = 0.1
)

// DeviceInput samples keyboard, mouse and the first gamepad.
type DeviceInput struct {
	lastX, lastY int
	primed       bool
}

func NewDeviceInput() *DeviceInput {
	return &DeviceInput{}
}

func (d *DeviceInput) Sample(_ *ecs.World, _ float64) (component.Input, error) {
	in := component.Input{Source: component.InputDevices}

	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		in.Move[0] -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		in.Move[0] += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		in.Move[1] += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		in.Move[1] -= 1
	}

	in.Sprint = ebiten.IsKeyPressed(ebiten.KeyShiftLeft)
	in.Jump = inpututil.IsKeyJustPressed(ebiten.KeySpace)
	in.Dash = inpututil.IsKeyJustPressed(ebiten.KeyControlLeft) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	in.Reset = inpututil.IsKeyJustPressed(ebiten.KeyR)

	x, y := ebiten.CursorPosition()
	if d.primed && ebiten.CursorMode() == ebiten.CursorModeCaptured {
		in.LookX = float64(x-d.lastX) * mouseSensitivity
		// the look axis is positive when the mouse moves up
		in.LookY = -float64(y-d.lastY) * mouseSensitivity
	}
	d.lastX, d.lastY, d.primed = x, y, true

	_, wheel := ebiten.Wheel()
	in.Scroll = wheel

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		sampleGamepad(gamepads[0], &in)
	}
	return in, nil
}

func sampleGamepad(id ebiten.GamepadID, in *component.Input) {
	if !ebiten.IsStandardGamepadLayoutAvailable(id) {
		return
	}

	lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
	ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
	if math.Hypot(lx, ly) > stickDeadzone {
		in.Move = mgl64.Vec2{lx, -ly}
	}

	rx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
	ry := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical)
	if math.Hypot(rx, ry) > stickDeadzone {
		in.LookX = rx
		in.LookY = -ry
	}

	in.Sprint = in.Sprint || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftStick)
	in.Jump = in.Jump || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
	in.Dash = in.Dash || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightLeft)
	in.Reset = in.Reset || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightStick)

	if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontTopRight) {
		in.Scroll += 1
	}
	if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontTopLeft) {
		in.Scroll -= 1
	}
}
