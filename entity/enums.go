package entity

// Status is the report lifecycle state.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusDenied     Status = "denied"
	StatusClosed     Status = "closed"
)

// Category is the report topic. Closed set, enforced at the validation
// boundary rather than by the database.
type Category string

const (
	CategoryPothole          Category = "pothole"
	CategoryStreetLight      Category = "street_light"
	CategoryTrafficSignal    Category = "traffic_signal"
	CategoryRoadDamage       Category = "road_damage"
	CategorySanitation       Category = "sanitation"
	CategorySinkhole         Category = "sinkhole"
	CategoryElectricalHazard Category = "electrical_hazard"
	CategoryWanderingWaste   Category = "wandering_waste"
	CategoryFlooding         Category = "flooding"
	CategoryPipeLeak         Category = "pipe_leak"
	CategoryFallenTree       Category = "fallen_tree"
	CategoryWaterOutage      Category = "water_outage"
	CategoryOther            Category = "other"
)

// Department is the administrative unit responsible for a fixed set of
// categories.
type Department string

const (
	DepartmentDTOP Department = "DTOP"
	DepartmentLUMA Department = "LUMA"
	DepartmentAAA  Department = "AAA"
	DepartmentDDS  Department = "DDS"
)

var Statuses = []Status{
	StatusOpen, StatusInProgress, StatusResolved, StatusDenied, StatusClosed,
}

var Categories = []Category{
	CategoryPothole, CategoryStreetLight, CategoryTrafficSignal,
	CategoryRoadDamage, CategorySanitation, CategorySinkhole,
	CategoryElectricalHazard, CategoryWanderingWaste, CategoryFlooding,
	CategoryPipeLeak, CategoryFallenTree, CategoryWaterOutage, CategoryOther,
}

var Departments = []Department{
	DepartmentDTOP, DepartmentLUMA, DepartmentAAA, DepartmentDDS,
}

// DepartmentCategories maps each department to the categories it handles.
// "other" belongs to no department.
var DepartmentCategories = map[Department][]Category{
	DepartmentLUMA: {CategoryStreetLight, CategoryTrafficSignal, CategoryElectricalHazard},
	DepartmentDTOP: {CategoryPothole, CategoryRoadDamage, CategoryFallenTree},
	DepartmentAAA:  {CategoryFlooding, CategoryWaterOutage, CategoryPipeLeak},
	DepartmentDDS:  {CategorySanitation, CategoryWanderingWaste, CategorySinkhole},
}

// CategoryDepartment is the inverse of DepartmentCategories.
var CategoryDepartment = map[Category]Department{}

func init() {
	for dept, cats := range DepartmentCategories {
		for _, c := range cats {
			CategoryDepartment[c] = dept
		}
	}
}

func ValidStatus(s Status) bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

func ValidCategory(c Category) bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

func ValidDepartment(d Department) bool {
	for _, v := range Departments {
		if d == v {
			return true
		}
	}
	return false
}
