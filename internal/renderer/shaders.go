package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// =============================================================
//
//	Shaders
//
// =============================================================
type Shader struct {
	Name           string
	vertexSource   string
	fragmentSource string
	program        uint32
	isCompiled     bool
	uniforms       *UniformCache
}

// Compile builds and links the program. Errors carry the driver's info log.
func (shader *Shader) Compile() error {
	if shader.isCompiled {
		return nil
	}
	vertexShader, err := GenShader(shader.vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return fmt.Errorf("%s vertex shader: %w", shader.Name, err)
	}
	fragmentShader, err := GenShader(shader.fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return fmt.Errorf("%s fragment shader: %w", shader.Name, err)
	}
	program, err := GenShaderProgram(vertexShader, fragmentShader)
	if err != nil {
		return fmt.Errorf("%s program: %w", shader.Name, err)
	}
	shader.program = program
	shader.uniforms = NewUniformCache(program)
	shader.isCompiled = true
	return nil
}

func (shader *Shader) Use() {
	gl.UseProgram(shader.program)
}

func (shader *Shader) SetVec3(name string, value mgl32.Vec3) {
	shader.uniforms.SetVec3(name, value.X(), value.Y(), value.Z())
}

func (shader *Shader) SetFloat(name string, value float32) {
	shader.uniforms.SetFloat(name, value)
}

func (shader *Shader) SetInt(name string, value int32) {
	shader.uniforms.SetInt(name, value)
}

func (shader *Shader) SetMat4(name string, value mgl32.Mat4) {
	shader.uniforms.SetMat4(name, value)
}

func (shader *Shader) Delete() {
	if shader.isCompiled {
		gl.DeleteProgram(shader.program)
		shader.isCompiled = false
	}
}

// Shared by the standard, basic and fresnel programs.
var meshVertexShaderSource = `#version 330 core

layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec2 inTexCoord;
layout(location = 2) in vec3 inNormal;

uniform mat4 model;
uniform mat4 viewProjection;

out vec2 fragTexCoord;
out vec3 Normal;
out vec3 FragPos;

void main() {
    vec4 world = model * vec4(inPosition, 1.0);
    FragPos = world.xyz;
    Normal = mat3(model) * inNormal; // uniform scale only
    fragTexCoord = inTexCoord;
    gl_Position = viewProjection * world;
}
` + "\x00"

var standardFragmentShaderSource = `#version 330 core
in vec2 fragTexCoord;
in vec3 Normal;
in vec3 FragPos;

uniform sampler2D textureSampler;
uniform vec3 diffuseColor;
uniform float opacity;

uniform struct Sun {
    vec3 direction;
    vec3 color;
    float intensity;
} sun;

uniform struct PointLight {
    vec3 position;
    vec3 color;
    float intensity;
    float range;
    float constantAtten;
    float linearAtten;
    float quadraticAtten;
} point;

out vec4 FragColor;

void main() {
    vec4 texColor = texture(textureSampler, fragTexCoord);
    vec3 albedo = texColor.rgb * diffuseColor;
    vec3 norm = normalize(Normal);

    float sunDiff = max(dot(norm, -sun.direction), 0.0);
    vec3 lighting = sun.color * sun.intensity * sunDiff;

    vec3 toPoint = point.position - FragPos;
    float dist = length(toPoint);
    float pointDiff = max(dot(norm, toPoint / max(dist, 0.0001)), 0.0);
    float atten = 1.0 / (point.constantAtten + point.linearAtten * dist + point.quadraticAtten * dist * dist);
    if (point.range > 0.0 && dist > point.range) {
        atten = 0.0;
    }
    lighting += point.color * point.intensity * pointDiff * atten;

    FragColor = vec4(albedo * lighting, texColor.a * opacity);
}
` + "\x00"

var basicFragmentShaderSource = `#version 330 core
in vec2 fragTexCoord;
in vec3 Normal;
in vec3 FragPos;

uniform sampler2D textureSampler;
uniform vec3 diffuseColor;
uniform float opacity;

out vec4 FragColor;

void main() {
    vec4 texColor = texture(textureSampler, fragTexCoord);
    FragColor = vec4(texColor.rgb * diffuseColor, texColor.a * opacity);
}
` + "\x00"

var fresnelFragmentShaderSource = `#version 330 core
in vec2 fragTexCoord;
in vec3 Normal;
in vec3 FragPos;

uniform vec3 viewPos;
uniform vec3 rimColor;
uniform vec3 facingColor;
uniform float fresnelBias;
uniform float fresnelScale;
uniform float fresnelPower;

out vec4 FragColor;

void main() {
    vec3 I = normalize(FragPos - viewPos);
    float factor = fresnelBias + fresnelScale * pow(1.0 + dot(I, normalize(Normal)), fresnelPower);
    float alpha = clamp(factor, 0.0, 1.0);
    FragColor = vec4(mix(facingColor, rimColor, vec3(alpha)), alpha);
}
` + "\x00"

var pointsVertexShaderSource = `#version 330 core

layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec3 inColor;

uniform mat4 viewProjection;
uniform float pointSize;

out vec3 vColor;

void main() {
    vColor = inColor;
    gl_PointSize = pointSize;
    gl_Position = viewProjection * vec4(inPosition, 1.0);
}
` + "\x00"

var pointsFragmentShaderSource = `#version 330 core
in vec3 vColor;

uniform vec3 diffuseColor;
uniform float opacity;

out vec4 FragColor;

void main() {
    FragColor = vec4(diffuseColor * vColor, opacity);
}
` + "\x00"

func InitShader(kind MaterialKind) Shader {
	shader := Shader{Name: kind.String(), vertexSource: meshVertexShaderSource}
	switch kind {
	case STANDARD_MATERIAL:
		shader.fragmentSource = standardFragmentShaderSource
	case BASIC_MATERIAL:
		shader.fragmentSource = basicFragmentShaderSource
	case FRESNEL_MATERIAL:
		shader.fragmentSource = fresnelFragmentShaderSource
	case POINTS_MATERIAL:
		shader.vertexSource = pointsVertexShaderSource
		shader.fragmentSource = pointsFragmentShaderSource
	}
	return shader
}
