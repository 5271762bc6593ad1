package shaders

// The dot field pipeline renders every dot as a point sprite. The
// vertex stage maps pixel-space positions to NDC (Y flipped for the
// top-left-origin convention) and evaluates the per-dot pulse; the
// fragment stage masks the sprite square to a disc.

const dotFieldVertexShader = `
#version 410 core

layout(location = 0) in vec2 inPosition;
layout(location = 1) in float inSpeed;
layout(location = 2) in float inPhase;

uniform vec2 uResolution;
uniform float uClock;

out float vOpacity;

void main() {
    vec2 ndc = inPosition / uResolution * 2.0 - 1.0;
    gl_Position = vec4(ndc.x, -ndc.y, 0.0, 1.0);

    float phase = uClock * inSpeed + inPhase;
    vOpacity = 0.02 + (sin(phase) + 1.0) * 0.04;

    gl_PointSize = 4.0;
}
`

const dotFieldFragmentShader = `
#version 410 core

in float vOpacity;
out vec4 outColor;

void main() {
    vec2 p = gl_PointCoord * 2.0 - 1.0;
    if (dot(p, p) > 1.0) {
        discard;
    }
    outColor = vec4(1.0, 1.0, 1.0, vOpacity);
}
`

// CompileDotFieldProgram compiles and links the dot field shaders.
// Errors are *CompileError or *LinkError.
func CompileDotFieldProgram() (uint32, error) {
	return buildProgram(dotFieldVertexShader, dotFieldFragmentShader)
}
