package scene

import (
	"context"

	"github.com/go-gl/mathgl/mgl32"
)

// minClipW drops triangles reaching behind the near plane instead of clipping
// them.
const minClipW = 1e-3

// Execute replays the frame's recorded draws, projecting every triangle edge
// to screen space with the frame's own constants. It is meant to run on the
// draw worker while the CPU prepares the next frame.
func (fr *FrameResource) Execute(ctx context.Context) error {
	for layer := range fr.Lines {
		fr.Lines[layer] = fr.Lines[layer][:0]
	}

	width, height := fr.Pass.RenderTargetSize.X(), fr.Pass.RenderTargetSize.Y()
	for i, draw := range fr.Draws {
		if i%64 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		mvp := fr.Pass.ViewProj.Mul4(fr.Objects[draw.ObjectIndex].World)
		indices := draw.Mesh.Indices
		end := draw.StartIndex + draw.IndexCount
		if end > len(indices) {
			end = len(indices)
		}

		for t := draw.StartIndex; t+2 < end; t += 3 {
			var screen [3]mgl32.Vec2
			visible := true
			for c := 0; c < 3; c++ {
				index := int(indices[t+c])
				if index >= len(draw.Mesh.Positions) {
					visible = false
					break
				}
				p := draw.Mesh.Positions[index]
				clip := mvp.Mul4x1(p.Vec4(1))
				if clip.W() < minClipW {
					visible = false
					break
				}
				screen[c] = mgl32.Vec2{
					(clip.X()/clip.W() + 1) * 0.5 * width,
					(1 - clip.Y()/clip.W()) * 0.5 * height,
				}
			}
			if !visible {
				continue
			}

			fr.Lines[draw.Layer] = append(fr.Lines[draw.Layer],
				Segment{screen[0].X(), screen[0].Y(), screen[1].X(), screen[1].Y()},
				Segment{screen[1].X(), screen[1].Y(), screen[2].X(), screen[2].Y()},
				Segment{screen[2].X(), screen[2].Y(), screen[0].X(), screen[0].Y()},
			)
		}
	}
	return nil
}
