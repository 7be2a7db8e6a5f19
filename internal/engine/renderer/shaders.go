package renderer

// meshVertexShader transforms box vertices and passes world-space normals
// and UVs to the fragment stage.
const meshVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPosition;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aTexCoord;

uniform mat4 uViewProj;
uniform mat4 uModel;

out vec3 vWorldPos;
out vec3 vNormal;
out vec2 vTexCoord;

void main() {
    vec4 world = uModel * vec4(aPosition, 1.0);
    vWorldPos = world.xyz;
    vNormal = mat3(uModel) * aNormal;
    vTexCoord = aTexCoord;
    gl_Position = uViewProj * world;
}
`

// meshFragmentShader shades basic materials as texture * color. Lit
// materials add ambient and Lambert point light terms.
const meshFragmentShader = `
#version 410 core

#define MAX_POINT_LIGHTS 4

in vec3 vWorldPos;
in vec3 vNormal;
in vec2 vTexCoord;

uniform sampler2D uTexture;
uniform vec4 uColor;
uniform bool uLit;
uniform bool uBackSide;

uniform vec3 uAmbient;
uniform int uPointLightCount;
uniform vec3 uPointLightPositions[MAX_POINT_LIGHTS];
uniform vec3 uPointLightColors[MAX_POINT_LIGHTS];
uniform float uPointLightRanges[MAX_POINT_LIGHTS];

out vec4 FragColor;

void main() {
    vec4 base = texture(uTexture, vTexCoord) * uColor;
    if (!uLit) {
        FragColor = base;
        return;
    }

    vec3 normal = normalize(vNormal);
    if (uBackSide) {
        normal = -normal;
    }

    vec3 light = uAmbient;
    for (int i = 0; i < uPointLightCount && i < MAX_POINT_LIGHTS; i++) {
        vec3 toLight = uPointLightPositions[i] - vWorldPos;
        float dist = length(toLight);
        float attenuation = 1.0;
        if (uPointLightRanges[i] > 0.0) {
            attenuation = clamp(1.0 - dist / uPointLightRanges[i], 0.0, 1.0);
        }
        float diffuse = max(dot(normal, toLight / max(dist, 0.0001)), 0.0);
        light += uPointLightColors[i] * diffuse * attenuation;
    }

    FragColor = vec4(base.rgb * light, base.a);
}
`

// compositeVertexShader draws a full-screen triangle pair.
const compositeVertexShader = `
#version 410 core

layout (location = 0) in vec2 aPosition;

out vec2 vTexCoord;

void main() {
    vTexCoord = aPosition * 0.5 + 0.5;
    gl_Position = vec4(aPosition, 0.0, 1.0);
}
`

// compositeFragmentShader blends the offscreen scene over the container
// background at the surface opacity.
const compositeFragmentShader = `
#version 410 core

in vec2 vTexCoord;

uniform sampler2D uScene;
uniform float uOpacity;

out vec4 FragColor;

void main() {
    FragColor = vec4(texture(uScene, vTexCoord).rgb, uOpacity);
}
`
