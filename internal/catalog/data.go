package catalog

var blocks = map[string]Block{
	"A": {
		Code:        "A",
		Name:        "A Block",
		Floors:      []string{"Ground", "First", "Second"},
		Description: "Administration offices and first-year classrooms",
	},
	"B": {
		Code:        "B",
		Name:        "B Block",
		Floors:      []string{"Ground", "First", "Second", "Third"},
		Description: "Computer Science and Information Technology departments",
	},
	"C": {
		Code:        "C",
		Name:        "C Block",
		Floors:      []string{"Ground", "First", "Second"},
		Description: "Electronics and Electrical departments",
	},
	"D": {
		Code:        "D",
		Name:        "D Block",
		Floors:      []string{"Ground", "First"},
		Description: "Mechanical, Civil and Production workshops",
	},
	"E": {
		Code:        "E",
		Name:        "E Block",
		Floors:      []string{"Ground", "First"},
		Description: "Seminar halls and central library annex",
	},
}

var defaultClassroomComponents = []Component{
	{Name: "Whiteboard", Category: "teaching", Quantity: 1},
	{Name: "Projector", Category: "electronics", Quantity: 1},
	{Name: "Projector Screen", Category: "teaching", Quantity: 1},
	{Name: "Ceiling Fan", Category: "electrical", Quantity: 4},
	{Name: "Tube Light", Category: "electrical", Quantity: 6},
	{Name: "Student Bench", Category: "furniture", Quantity: 30},
	{Name: "Teacher Desk", Category: "furniture", Quantity: 1},
	{Name: "Teacher Chair", Category: "furniture", Quantity: 1},
}

var rooms = map[string]Room{
	"B101": {
		Code: "B101",
		Name: "CS Programming Lab I",
		Type: "laboratory",
		Components: []Component{
			{Name: "Desktop Computer", Category: "electronics", Quantity: 60},
			{Name: "Projector", Category: "electronics", Quantity: 1},
			{Name: "Whiteboard", Category: "teaching", Quantity: 1},
			{Name: "Air Conditioner", Category: "electrical", Quantity: 4},
			{Name: "Network Switch", Category: "network", Quantity: 3},
			{Name: "Lab Stool", Category: "furniture", Quantity: 60},
		},
	},
	"B102": {
		Code: "B102",
		Name: "CS Programming Lab II",
		Type: "laboratory",
		Components: []Component{
			{Name: "Desktop Computer", Category: "electronics", Quantity: 40},
			{Name: "Projector", Category: "electronics", Quantity: 1},
			{Name: "Whiteboard", Category: "teaching", Quantity: 1},
			{Name: "Air Conditioner", Category: "electrical", Quantity: 3},
			{Name: "Network Switch", Category: "network", Quantity: 2},
			{Name: "Lab Stool", Category: "furniture", Quantity: 40},
		},
	},
	"B201": {
		Code: "B201",
		Name: "CS Seminar Hall",
		Type: "seminar_hall",
		Components: []Component{
			{Name: "Podium", Category: "teaching", Quantity: 1},
			{Name: "Projector", Category: "electronics", Quantity: 2},
			{Name: "Sound System", Category: "electronics", Quantity: 1},
			{Name: "Wireless Microphone", Category: "electronics", Quantity: 2},
			{Name: "Air Conditioner", Category: "electrical", Quantity: 6},
			{Name: "Cushioned Chair", Category: "furniture", Quantity: 120},
		},
	},
	"C105": {
		Code: "C105",
		Name: "ECE Circuits Lab",
		Type: "laboratory",
		Components: []Component{
			{Name: "Oscilloscope", Category: "instruments", Quantity: 15},
			{Name: "Function Generator", Category: "instruments", Quantity: 15},
			{Name: "Regulated Power Supply", Category: "instruments", Quantity: 15},
			{Name: "Whiteboard", Category: "teaching", Quantity: 1},
			{Name: "Work Bench", Category: "furniture", Quantity: 15},
		},
	},
	"E001": {
		Code: "E001",
		Name: "Main Auditorium",
		Type: "auditorium",
		Components: []Component{
			{Name: "Stage Lighting Rig", Category: "electrical", Quantity: 1},
			{Name: "Sound System", Category: "electronics", Quantity: 1},
			{Name: "Projector", Category: "electronics", Quantity: 2},
			{Name: "Wireless Microphone", Category: "electronics", Quantity: 4},
			{Name: "Podium", Category: "teaching", Quantity: 1},
			{Name: "Fixed Seating", Category: "furniture", Quantity: 500},
		},
	},
}
