package trace

type RouteType string

//goland:noinspection GoUnusedConst
const (
	RouteTypeTram      RouteType = "Tram"
	RouteTypeMetro     RouteType = "Metro"
	RouteTypeRail      RouteType = "Rail"
	RouteTypeBus       RouteType = "Bus"
	RouteTypeFerry     RouteType = "Ferry"
	RouteTypeCableCar  RouteType = "CableCar"
	RouteTypeFunicular RouteType = "Funicular"
	RouteTypeWalk      RouteType = "Walk"
	RouteTypeUnknown   RouteType = "UNKNOWN"
)
