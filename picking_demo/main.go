package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/picking/camera"
	"github.com/vkngwrapper/picking/frames"
	"github.com/vkngwrapper/picking/models"
	"github.com/vkngwrapper/picking/pick"
	"github.com/vkngwrapper/picking/scene"
)

const (
	DefaultFrameResources = 3

	windowWidth  = 800
	windowHeight = 600

	moveSpeed = 10
)

type PickingApplication struct {
	options Options

	window   *sdl.Window
	renderer *sdl.Renderer
	width    int
	height   int

	camera *camera.Camera
	timer  *frames.Timer
	scene  *scene.Scene

	fence *frames.TimelineFence
	queue *frames.WorkQueue
	ring  *frames.Ring[*scene.FrameResource]

	// submitted last frame, presented once its fence completes
	pending *frames.Frame[*scene.FrameResource]

	leftDown   bool
	lastMouseX int32
	lastMouseY int32

	frameCount   int
	statsElapsed float32
}

func (app *PickingApplication) Run() error {
	err := app.initWindow()
	if err != nil {
		return err
	}
	defer app.cleanup()

	err = app.buildScene()
	if err != nil {
		return err
	}

	err = app.buildFrameResources()
	if err != nil {
		return err
	}

	return app.mainLoop()
}

func (app *PickingApplication) initWindow() error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return err
	}

	window, err := sdl.CreateWindow("Picking", sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, windowWidth, windowHeight, sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE)
	if err != nil {
		return err
	}
	app.window = window

	app.renderer, err = sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		return err
	}

	app.camera = camera.New()
	app.camera.SetPosition(0, 2, -15)
	if !app.onResize() {
		return errors.New("window has no drawable area")
	}

	app.timer = frames.NewTimer()
	return nil
}

func viewportAspect(w, h int32) (float32, bool) {
	if w <= 0 || h <= 0 {
		return 0, false
	}
	return float32(w) / float32(h), true
}

// onResize reports false while the window has no drawable area.
func (app *PickingApplication) onResize() bool {
	w, h := app.window.GetSize()
	aspect, ok := viewportAspect(w, h)
	if !ok {
		return false
	}

	app.width, app.height = int(w), int(h)
	app.camera.SetLens(0.25*math.Pi, aspect, 1, 1000)
	return true
}

func (app *PickingApplication) buildScene() error {
	app.scene = scene.New(app.options.FrameResources)

	type placement struct {
		name  string
		model *models.Model
		world mgl32.Mat4
	}
	var placements []placement

	if app.options.ModelPath != "" {
		model, err := models.LoadFile(app.options.ModelPath)
		if err != nil {
			return err
		}
		placements = append(placements, placement{model.Name, model, mgl32.Translate3D(0, 1, 0)})
	} else {
		placements = append(placements,
			placement{"box", models.CreateBox(2, 2, 2), mgl32.Translate3D(-3, 1, 0)},
			placement{"sphere", models.CreateSphere(1.5, 20, 20), mgl32.Translate3D(3, 1.5, 0)},
			placement{"stretched box", models.CreateBox(1, 1, 1), mgl32.Translate3D(0, 1, 4).Mul4(mgl32.Scale3D(4, 1, 0.5))},
			placement{"floor", models.CreateGrid(20, 20, 11, 11), mgl32.Ident4()},
		)
	}

	for _, p := range placements {
		mesh, err := p.model.Mesh()
		if err != nil {
			return err
		}

		_, err = app.scene.AddObject(pick.NewObject(p.name, mesh, p.world), "gray0")
		if err != nil {
			return err
		}
		log.Printf("[scene] %s - %d vertices, %d triangles", p.name, len(mesh.Positions), mesh.TriangleCount())
	}

	return nil
}

func (app *PickingApplication) buildFrameResources() error {
	app.fence = frames.NewTimelineFence()
	app.queue = frames.NewWorkQueue(context.Background(), app.options.FrameResources)

	var err error
	app.ring, err = frames.NewRing(app.options.FrameResources, app.fence, func(int) (*scene.FrameResource, error) {
		return scene.NewFrameResource(app.scene.ObjectCount(), app.scene.MaterialCount()), nil
	})
	return err
}

func (app *PickingApplication) mainLoop() error {
	rendering := true
	app.timer.Reset()

appLoop:
	for true {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				break appLoop
			case *sdl.WindowEvent:
				switch e.Event {
				case sdl.WINDOWEVENT_MINIMIZED:
					rendering = false
					app.timer.Stop()
				case sdl.WINDOWEVENT_RESTORED:
					rendering = true
					app.timer.Start()
				case sdl.WINDOWEVENT_RESIZED:
					rendering = app.onResize()
				}
			case *sdl.MouseButtonEvent:
				app.onMouseButton(e)
			case *sdl.MouseMotionEvent:
				app.onMouseMove(e)
			}
		}

		app.timer.Tick()
		if rendering {
			app.calculateFrameStats()

			err := app.update()
			if err != nil {
				return err
			}

			err = app.draw()
			if err != nil {
				return err
			}
		} else {
			sdl.Delay(100)
		}
	}

	return app.ring.Flush(app.queue.Context())
}

func (app *PickingApplication) onMouseButton(e *sdl.MouseButtonEvent) {
	switch {
	case e.Button == sdl.BUTTON_LEFT && e.State == sdl.PRESSED:
		app.leftDown = true
		app.lastMouseX, app.lastMouseY = e.X, e.Y
	case e.Button == sdl.BUTTON_LEFT:
		app.leftDown = false
	case e.Button == sdl.BUTTON_RIGHT && e.State == sdl.PRESSED:
		if app.width > 0 && app.height > 0 {
			app.scene.Pick(int(e.X), int(e.Y), app.width, app.height, app.camera)
		}
	}
}

func (app *PickingApplication) onMouseMove(e *sdl.MouseMotionEvent) {
	if app.leftDown {
		dx := mgl32.DegToRad(0.25 * float32(e.X-app.lastMouseX))
		dy := mgl32.DegToRad(0.25 * float32(e.Y-app.lastMouseY))

		app.camera.Pitch(dy)
		app.camera.RotateY(dx)
	}

	app.lastMouseX, app.lastMouseY = e.X, e.Y
}

func (app *PickingApplication) onKeyboardInput() {
	dt := app.timer.DeltaTime()
	keys := sdl.GetKeyboardState()

	if keys[sdl.SCANCODE_W] != 0 {
		app.camera.Walk(moveSpeed * dt)
	}
	if keys[sdl.SCANCODE_S] != 0 {
		app.camera.Walk(-moveSpeed * dt)
	}
	if keys[sdl.SCANCODE_A] != 0 {
		app.camera.Strafe(-moveSpeed * dt)
	}
	if keys[sdl.SCANCODE_D] != 0 {
		app.camera.Strafe(moveSpeed * dt)
	}

	app.camera.UpdateViewMatrix()
}

func (app *PickingApplication) update() error {
	app.onKeyboardInput()

	frame, err := app.ring.Next(app.queue.Context())
	if err != nil {
		return err
	}

	fr := frame.Resource
	app.scene.UpdateObjectConstants(fr)
	app.scene.UpdateMaterials(fr)
	app.scene.UpdateMainPass(fr, app.camera, app.width, app.height, app.timer)
	app.scene.RecordDraws(fr)
	return nil
}

func (app *PickingApplication) draw() error {
	ctx := app.queue.Context()

	frame := app.ring.Current()
	err := app.ring.Submit(ctx, app.queue, frame, frame.Resource.Execute)
	if err != nil {
		return err
	}

	if app.pending != nil {
		err = app.ring.Wait(ctx, app.pending)
		if err != nil {
			return errors.Wrapf(err, "waiting to present frame resource %d", app.pending.Index)
		}

		err = app.present(app.pending.Resource)
		if err != nil {
			return err
		}
	}
	app.pending = frame

	return nil
}

func (app *PickingApplication) present(fr *scene.FrameResource) error {
	err := app.renderer.SetDrawColor(176, 196, 222, 255)
	if err != nil {
		return err
	}

	err = app.renderer.Clear()
	if err != nil {
		return err
	}

	colors := [scene.LayerCount][3]uint8{
		scene.Opaque:    {90, 90, 90},
		scene.Highlight: {255, 255, 0},
	}
	for layer, lines := range fr.Lines {
		c := colors[layer]
		err = app.renderer.SetDrawColor(c[0], c[1], c[2], 255)
		if err != nil {
			return err
		}

		for _, seg := range lines {
			err = app.renderer.DrawLine(int32(seg.X0), int32(seg.Y0), int32(seg.X1), int32(seg.Y1))
			if err != nil {
				return err
			}
		}
	}

	app.renderer.Present()
	return nil
}

func (app *PickingApplication) calculateFrameStats() {
	app.frameCount++
	app.statsElapsed += app.timer.DeltaTime()
	if app.statsElapsed < 1 {
		return
	}

	fps := float32(app.frameCount) / app.statsElapsed
	app.window.SetTitle(fmt.Sprintf("Picking    fps: %.0f   mspf: %.3f", fps, 1000/fps))

	app.frameCount = 0
	app.statsElapsed = 0
}

func (app *PickingApplication) cleanup() {
	if app.queue != nil {
		if err := app.queue.Close(); err != nil {
			log.Printf("[frames] %+v", err)
		}
	}

	if app.renderer != nil {
		app.renderer.Destroy()
	}

	if app.window != nil {
		app.window.Destroy()
	}

	sdl.Quit()
}

func main() {
	runtime.LockOSThread()
	app := &PickingApplication{options: DefaultOptions()}

	err := app.ProcessCommandLineArgs()
	if err != nil {
		log.Fatalln(err)
	}

	err = app.Run()
	if err != nil {
		log.Fatalf("%+v\n", err)
	}
}
