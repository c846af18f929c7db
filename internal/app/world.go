package app

// room is one location of the demo world.
type room struct {
	name        string
	description string
	exits       map[string]int
	visited     bool
}

type world struct {
	rooms []*room
}

func newWorld() *world {
	return &world{rooms: []*room{
		{
			name: "Lighthouse Keep",
			description: "You are in the keep at the foot of the lighthouse. Salt has " +
				"crusted the single window and the floorboards creak with every " +
				"gust. A spiral stair climbs to the north.",
			exits: map[string]int{"north": 1},
		},
		{
			name: "Spiral Stair",
			description: "The stair winds upward around a cold iron column. Someone " +
				"has scratched tally marks into the wall, hundreds of them, each " +
				"group of five crossed through. The keep lies south and the lantern " +
				"room is further north.",
			exits: map[string]int{"south": 0, "north": 2},
		},
		{
			name: "Lantern Room",
			description: "Glass panes surround a great dark lens. Beyond them the sea " +
				"stretches to a horizon the colour of slate. The stair leads back " +
				"down to the south.",
			exits: map[string]int{"south": 1},
		},
	}}
}

// tide is printed paragraph by paragraph by the wait command.
var tide = []string{
	"Time passes. The tide turns somewhere below, and the lighthouse answers " +
		"each wave with a long low groan that rises through the stone and into " +
		"your bones.",
	"A gull lands on the sill outside, considers you with one yellow eye, and " +
		"leaves again without comment. The wind changes direction twice and then " +
		"settles into a steady pull from the west.",
	"You count the tally marks in your head without meaning to. The numbers " +
		"never come out the same twice, which is either a fault in the counting " +
		"or a fault in the wall.",
	"Clouds gather along the horizon in heavy grey folds. The light dims by " +
		"degrees until the glass reflects more of the room than it shows of the " +
		"sea beyond it.",
	"Somewhere a door bangs, once, and is silent. No footsteps follow. The " +
		"lighthouse settles back into its creaking patience and you into yours.",
	"Rain begins, first as a hiss against the panes and then as a drumming " +
		"that fills every corner. The lamp in the keep below flickers but holds.",
	"At last the rain thins to a mist. The water on the glass gathers into " +
		"slow beads that slide down, join, and vanish at the frame.",
}
