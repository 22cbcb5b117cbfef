package menu

// Bundled menu files seeded into an empty menu directory on first load.
// Existing files are never overwritten; deleting a file and reloading
// restores the shipped version.
var defaultFiles = map[string]string{
	"menu.yml": `title: "Warps"
kind: static
layout:
  - "#########"
  - "#a_b_c_d#"
  - "#########"
items:
  "#":
    material: GRAY_STAINED_GLASS_PANE
    name: " "
  a:
    material: ENDER_PEARL
    name: "My warps"
    actions: ["menu:warps"]
  b:
    material: COMPASS
    name: "Public warps"
    actions: ["menu:public-warps"]
  c:
    material: WRITABLE_BOOK
    name: "Create a warp"
    icons:
      - condition: "permission:postwarps.create"
        actions: ["command:warp create"]
      - material: BARRIER
        name: "Create a warp"
        lore: ["Requires postwarps.create"]
  d:
    material: OAK_SIGN
    name: "Help"
    lore:
      - "Click a warp to teleport."
`,
	"warps.yml": `title: "My warps — page {{.page}}"
kind: paged
content: w
layout:
  - "#########"
  - "wwwwwwwww"
  - "wwwwwwwww"
  - "#p_____n#"
items:
  "#":
    material: GRAY_STAINED_GLASS_PANE
    name: " "
  w:
    material: ENDER_PEARL
    name: "{{.warp}}"
    lore:
      - "World: {{.world}}"
    actions: ["warp:{{.warp}}"]
    icons:
      - condition: "public == true"
        glow: true
  p:
    material: ARROW
    name: "Previous page"
    actions: ["page:prev"]
  n:
    material: ARROW
    name: "Next page"
    actions: ["page:next"]
`,
	"public-warps.yml": `title: "Public warps — page {{.page}}"
kind: paged
content: w
layout:
  - "#########"
  - "wwwwwwwww"
  - "wwwwwwwww"
  - "#p_____n#"
items:
  "#":
    material: GRAY_STAINED_GLASS_PANE
    name: " "
  w:
    material: ENDER_PEARL
    name: "{{.warp}}"
    lore:
      - "Owner: {{.owner}}"
      - "World: {{.world}}"
    actions: ["warp:{{.owner}}:{{.warp}}"]
  p:
    material: ARROW
    name: "Previous page"
    actions: ["page:prev"]
  n:
    material: ARROW
    name: "Next page"
    actions: ["page:next"]
`,
}
