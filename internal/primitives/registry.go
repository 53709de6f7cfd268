package primitives

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Registry maps primitive kinds to meshes sharing one lit material. Meshes and the shader are
// created on first use so that GPU resources are allocated after the window/OpenGL context exists.
type Registry struct {
	meshes map[Kind]rl.Mesh
	mtl    rl.Material
	ready  bool
	env    Environment
	locs   uniformLocs
}

type uniformLocs struct {
	viewPos, lightDir, lightColor, ambient int32
	fogColor, fogNear, fogFar, unlit       int32
}

// NewRegistry returns a registry with no GPU resources yet.
func NewRegistry() *Registry {
	return &Registry{meshes: make(map[Kind]rl.Mesh)}
}

// SetEnvironment sets lighting and fog for this frame. Call once per frame before drawing.
func (r *Registry) SetEnvironment(env Environment) {
	r.env = env
}

func (r *Registry) ensureMaterial() {
	if r.ready {
		return
	}
	r.ready = true
	r.mtl = rl.LoadMaterialDefault()
	shader := rl.LoadShaderFromMemory(litVS, litFS)
	if !rl.IsShaderValid(shader) {
		return
	}
	r.mtl.Shader = shader
	r.locs = uniformLocs{
		viewPos:    rl.GetShaderLocation(shader, "viewPos"),
		lightDir:   rl.GetShaderLocation(shader, "lightDir"),
		lightColor: rl.GetShaderLocation(shader, "lightColor"),
		ambient:    rl.GetShaderLocation(shader, "ambient"),
		fogColor:   rl.GetShaderLocation(shader, "fogColor"),
		fogNear:    rl.GetShaderLocation(shader, "fogNear"),
		fogFar:     rl.GetShaderLocation(shader, "fogFar"),
		unlit:      rl.GetShaderLocation(shader, "unlit"),
	}
}

func (r *Registry) mesh(kind Kind) (rl.Mesh, bool) {
	if m, ok := r.meshes[kind]; ok {
		return m, true
	}
	var m rl.Mesh
	switch kind {
	case Cube:
		m = rl.GenMeshCube(1, 1, 1)
	case Plane:
		m = rl.GenMeshPlane(1, 1, 1, 1)
	default:
		return rl.Mesh{}, false
	}
	r.meshes[kind] = m
	return m, true
}

// setUniforms uploads the environment (cgo-safe: local arrays).
func (r *Registry) setUniforms(unlit bool) {
	shader := r.mtl.Shader
	if !rl.IsShaderValid(shader) {
		return
	}
	e := r.env
	vec3 := func(loc int32, v [3]float32) {
		if loc >= 0 {
			rl.SetShaderValueV(shader, loc, v[:], rl.ShaderUniformVec3, 1)
		}
	}
	float := func(loc int32, v float32) {
		if loc >= 0 {
			rl.SetShaderValue(shader, loc, []float32{v}, rl.ShaderUniformFloat)
		}
	}
	vec3(r.locs.viewPos, [3]float32{e.ViewPos[0], e.ViewPos[1], e.ViewPos[2]})
	vec3(r.locs.lightDir, [3]float32{e.LightPos[0], e.LightPos[1], e.LightPos[2]})
	vec3(r.locs.lightColor, rgb(e.LightColor, e.LightIntensity))
	vec3(r.locs.ambient, rgb(e.Ambient, e.AmbientIntensity))
	vec3(r.locs.fogColor, rgb(e.FogColor, 1))
	float(r.locs.fogNear, e.FogNear)
	float(r.locs.fogFar, e.FogFar)
	if unlit {
		float(r.locs.unlit, 1)
	} else {
		float(r.locs.unlit, 0)
	}
}

// Draw draws one Lambert-shaded instance of kind with the given model transform and tint (alpha = opacity).
// Must be called between BeginMode3D and EndMode3D. Unknown kinds are skipped.
func (r *Registry) Draw(kind Kind, transform rl.Matrix, tint rl.Color) {
	r.draw(kind, transform, tint, false)
}

// DrawUnlit is Draw without shading (flat tint); fog still applies.
func (r *Registry) DrawUnlit(kind Kind, transform rl.Matrix, tint rl.Color) {
	r.draw(kind, transform, tint, true)
}

func (r *Registry) draw(kind Kind, transform rl.Matrix, tint rl.Color, unlit bool) {
	r.ensureMaterial()
	m, ok := r.mesh(kind)
	if !ok {
		return
	}
	if albedo := r.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = tint
	}
	r.setUniforms(unlit)
	rl.DrawMesh(m, r.mtl, transform)
}

// Unload releases meshes first, then the shared material and its shader. Safe to call more
// than once and before anything was drawn.
func (r *Registry) Unload() {
	if r == nil {
		return
	}
	for kind, m := range r.meshes {
		rl.UnloadMesh(&m)
		delete(r.meshes, kind)
	}
	if r.ready {
		rl.UnloadMaterial(r.mtl)
		r.ready = false
	}
}

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec3 lightColor;
uniform vec3 ambient;
uniform vec3 fogColor;
uniform float fogNear;
uniform float fogFar;
uniform float unlit;
out vec4 finalColor;
void main() {
  vec4 tint = colDiffuse;
  vec3 color = tint.rgb;
  if (unlit < 0.5) {
    vec3 N = normalize(fragNormal);
    float NdotL = max(dot(N, normalize(lightDir)), 0.0);
    color = tint.rgb * (ambient + lightColor * NdotL);
  }
  float dist = length(viewPos - fragPosition);
  float fog = clamp((dist - fogNear) / max(fogFar - fogNear, 0.0001), 0.0, 1.0);
  finalColor = vec4(mix(color, fogColor, fog), tint.a);
}
`
)
