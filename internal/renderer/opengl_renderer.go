package renderer

import (
	"Globe3D/internal/logger"
	"fmt"
	"image"
	"image/draw"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

type OpenGLRenderer struct {
	width    int32
	height   int32
	shaders  map[MaterialKind]*Shader
	fallback image.Image
	// Bound whenever a material's map is missing, pending or failed
	fallbackTextureID uint32
	currentShader     *Shader
	geometries        []*Geometry
	points            []*Points
}

// NewOpenGLRenderer prepares a renderer; nothing touches GL until Init.
func NewOpenGLRenderer(width, height int32, fallback image.Image) *OpenGLRenderer {
	if fallback == nil {
		fallback = BlankImage()
	}
	return &OpenGLRenderer{
		width:    width,
		height:   height,
		fallback: fallback,
		shaders:  make(map[MaterialKind]*Shader),
	}
}

// Init compiles every program up front. A compile failure aborts startup.
// On any failure everything created so far is released.
func (rend *OpenGLRenderer) Init() error {
	if Debug {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}
	if err := setupOrCleanup(rend.Cleanup, rend.compileShaders, rend.uploadFallback); err != nil {
		return err
	}

	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.Viewport(0, 0, rend.width, rend.height)
	logger.Log.Info("OpenGL render initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.Int32("width", rend.width),
		zap.Int32("height", rend.height))
	return nil
}

func (rend *OpenGLRenderer) compileShaders() error {
	for _, kind := range []MaterialKind{STANDARD_MATERIAL, BASIC_MATERIAL, FRESNEL_MATERIAL, POINTS_MATERIAL} {
		shader := InitShader(kind)
		if err := shader.Compile(); err != nil {
			return err
		}
		rend.shaders[kind] = &shader
	}
	return nil
}

func (rend *OpenGLRenderer) uploadFallback() error {
	id, err := rend.Upload(rend.fallback)
	if err != nil {
		return fmt.Errorf("fallback texture: %w", err)
	}
	rend.fallbackTextureID = id
	return nil
}

// setupOrCleanup runs steps in order and calls cleanup once on the first
// failure.
func setupOrCleanup(cleanup func(), steps ...func() error) error {
	for _, step := range steps {
		if err := step(); err != nil {
			cleanup()
			return err
		}
	}
	return nil
}

func (rend *OpenGLRenderer) SetSize(width, height int32) {
	rend.width, rend.height = width, height
	gl.Viewport(0, 0, width, height)
}

func (rend *OpenGLRenderer) Size() (int32, int32) {
	return rend.width, rend.height
}

func (rend *OpenGLRenderer) Render(scene *Scene, camera *Camera) {
	gl.ClearColor(ClearColorR, ClearColorG, ClearColorB, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL) // co-radius layers must pass against the surface
	if FaceCullingEnabled {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
		gl.FrontFace(gl.CCW)
	}

	viewProjection := camera.GetViewProjection()
	sun := scene.FirstLight(DIRECTIONAL_LIGHT)
	point := scene.FirstLight(POINT_LIGHT)
	opaque, blended := scene.DrawList()

	gl.Disable(gl.BLEND)
	gl.DepthMask(true)
	for _, item := range opaque {
		rend.drawMesh(item, viewProjection, camera, sun, point)
	}

	gl.Enable(gl.BLEND)
	gl.DepthMask(false)
	for _, item := range blended {
		rend.setBlending(item.Mesh.Material.Blending)
		rend.drawMesh(item, viewProjection, camera, sun, point)
	}

	gl.Disable(gl.CULL_FACE)
	for _, p := range scene.Points {
		rend.setBlending(p.Blending())
		rend.drawPoints(p, viewProjection)
	}

	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
	gl.Disable(gl.DEPTH_TEST)
	gl.BindVertexArray(0)
}

func (rend *OpenGLRenderer) setBlending(b Blending) {
	switch b {
	case AdditiveBlending:
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
	default:
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}
}

func (rend *OpenGLRenderer) use(kind MaterialKind) *Shader {
	shader := rend.shaders[kind]
	if rend.currentShader != shader {
		shader.Use()
		rend.currentShader = shader
	}
	return shader
}

func (rend *OpenGLRenderer) drawMesh(item DrawItem, viewProjection mgl32.Mat4, camera *Camera, sun, point *Light) {
	mesh, mat := item.Mesh, item.Mesh.Material
	rend.ensureGeometry(mesh.Geometry)

	shader := rend.use(mat.Kind)
	shader.SetMat4("viewProjection", viewProjection)
	shader.SetMat4("model", item.World)

	switch mat.Kind {
	case FRESNEL_MATERIAL:
		shader.SetVec3("viewPos", camera.Position)
		shader.SetVec3("rimColor", mat.Fresnel.RimColor)
		shader.SetVec3("facingColor", mat.Fresnel.FacingColor)
		shader.SetFloat("fresnelBias", mat.Fresnel.Bias)
		shader.SetFloat("fresnelScale", mat.Fresnel.Scale)
		shader.SetFloat("fresnelPower", mat.Fresnel.Power)
	case STANDARD_MATERIAL:
		rend.setLightUniforms(shader, sun, point)
		fallthrough
	default:
		shader.SetVec3("diffuseColor", mat.Color)
		shader.SetFloat("opacity", mat.Opacity)
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, rend.textureFor(mat))
		shader.SetInt("textureSampler", 0)
	}

	gl.BindVertexArray(mesh.Geometry.VAO)
	gl.DrawElements(gl.TRIANGLES, int32(len(mesh.Geometry.Faces)), gl.UNSIGNED_INT, nil)
}

func (rend *OpenGLRenderer) setLightUniforms(shader *Shader, sun, point *Light) {
	if sun != nil {
		shader.SetVec3("sun.direction", sun.Direction)
		shader.SetVec3("sun.color", sun.Color)
		shader.SetFloat("sun.intensity", sun.Intensity)
	} else {
		shader.SetFloat("sun.intensity", 0)
	}
	if point != nil {
		shader.SetVec3("point.position", point.Position)
		shader.SetVec3("point.color", point.Color)
		shader.SetFloat("point.intensity", point.Intensity)
		shader.SetFloat("point.range", point.Range)
		shader.SetFloat("point.constantAtten", point.ConstantAtten)
		shader.SetFloat("point.linearAtten", point.LinearAtten)
		shader.SetFloat("point.quadraticAtten", point.QuadraticAtten)
	} else {
		shader.SetFloat("point.intensity", 0)
		shader.SetFloat("point.constantAtten", 1)
	}
}

func (rend *OpenGLRenderer) textureFor(mat *Material) uint32 {
	if mat.Map.Ready() {
		return mat.Map.ID
	}
	return rend.fallbackTextureID
}

func (rend *OpenGLRenderer) drawPoints(p *Points, viewProjection mgl32.Mat4) {
	if p.Count() == 0 {
		return
	}
	rend.ensurePoints(p)

	shader := rend.use(POINTS_MATERIAL)
	shader.SetMat4("viewProjection", viewProjection)
	color, opacity, size := mgl32.Vec3{1, 1, 1}, float32(1), float32(1)
	if p.Material != nil {
		color, opacity, size = p.Material.Color, p.Material.Opacity, p.Material.PointSize
	}
	shader.SetVec3("diffuseColor", color)
	shader.SetFloat("opacity", opacity)
	shader.SetFloat("pointSize", size)

	gl.BindVertexArray(p.VAO)
	gl.DrawArrays(gl.POINTS, 0, int32(p.Count()))
}

// ensureGeometry uploads shared geometry once, however many meshes use it.
func (rend *OpenGLRenderer) ensureGeometry(geo *Geometry) {
	if geo.uploaded {
		return
	}
	gl.GenVertexArrays(1, &geo.VAO)
	gl.BindVertexArray(geo.VAO)

	gl.GenBuffers(1, &geo.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, geo.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(geo.InterleavedData)*4, gl.Ptr(geo.InterleavedData), gl.STATIC_DRAW)

	gl.GenBuffers(1, &geo.EBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, geo.EBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(geo.Faces)*4, gl.Ptr(geo.Faces), gl.STATIC_DRAW)

	stride := int32(8 * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(2, 3, gl.FLOAT, false, stride, gl.PtrOffset(5*4))
	gl.EnableVertexAttribArray(2)

	geo.uploaded = true
	rend.geometries = append(rend.geometries, geo)
	logger.Log.Debug("Geometry uploaded",
		zap.String("name", geo.Name),
		zap.Int("vertices", geo.VertexCount()),
		zap.Int("triangles", geo.TriangleCount()))
}

func (rend *OpenGLRenderer) ensurePoints(p *Points) {
	if p.uploaded {
		return
	}
	data := make([]float32, 0, p.Count()*6)
	for i, pos := range p.Positions {
		c := mgl32.Vec3{1, 1, 1}
		if i < len(p.Colors) && (p.Material == nil || p.Material.VertexColors) {
			c = p.Colors[i]
		}
		data = append(data, pos.X(), pos.Y(), pos.Z(), c.X(), c.Y(), c.Z())
	}

	gl.GenVertexArrays(1, &p.VAO)
	gl.BindVertexArray(p.VAO)
	gl.GenBuffers(1, &p.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)

	stride := int32(6 * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)

	p.uploaded = true
	rend.points = append(rend.points, p)
}

// Upload creates a texture from an image.Image. Must run on the GL thread.
func (rend *OpenGLRenderer) Upload(img image.Image) (uint32, error) {
	if img == nil {
		return 0, fmt.Errorf("nil image")
	}
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != rgba.Rect.Size().X*4 {
		// Convert to a tightly packed *image.RGBA
		b := img.Bounds()
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}

	var textureID uint32
	gl.GenTextures(1, &textureID)
	gl.BindTexture(gl.TEXTURE_2D, textureID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(rgba.Rect.Size().X), int32(rgba.Rect.Size().Y), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))

	// U wraps around the globe seam, V stops at the poles
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.GenerateMipmap(gl.TEXTURE_2D)

	if errCode := gl.GetError(); errCode != gl.NO_ERROR {
		gl.DeleteTextures(1, &textureID)
		return 0, fmt.Errorf("texture upload failed: gl error 0x%x", errCode)
	}
	return textureID, nil
}

func (rend *OpenGLRenderer) Cleanup() {
	for _, geo := range rend.geometries {
		gl.DeleteVertexArrays(1, &geo.VAO)
		gl.DeleteBuffers(1, &geo.VBO)
		gl.DeleteBuffers(1, &geo.EBO)
		geo.uploaded = false
	}
	for _, p := range rend.points {
		gl.DeleteVertexArrays(1, &p.VAO)
		gl.DeleteBuffers(1, &p.VBO)
		p.uploaded = false
	}
	for _, shader := range rend.shaders {
		shader.Delete()
	}
	if rend.fallbackTextureID != 0 {
		gl.DeleteTextures(1, &rend.fallbackTextureID)
	}
	rend.geometries, rend.points = nil, nil
	rend.currentShader = nil
}

func GenShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	cSources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, cSources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		logger.Log.Error("Failed to compile", zap.Uint32("shaderType", shaderType), zap.String("log", log))
		return 0, fmt.Errorf("compile failed: %s", strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

func GenShaderProgram(vertexShader, fragmentShader uint32) (uint32, error) {
	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	gl.DetachShader(program, vertexShader)
	gl.DeleteShader(vertexShader)
	gl.DetachShader(program, fragmentShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		logger.Log.Error("Failed to link program", zap.String("log", log))
		return 0, fmt.Errorf("link failed: %s", strings.TrimRight(log, "\x00"))
	}
	return program, nil
}
