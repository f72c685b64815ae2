package stafilter

// Time property names of the SensorThings entities.
const (
	PhenomenonTime = "phenomenonTime"
	ResultTime     = "resultTime"
	ValidTime      = "validTime"
)

// ObservationSchema returns the time properties of an Observation.
// phenomenonTime may hold an instant or an interval.
func ObservationSchema() Schema {
	return Schema{
		PhenomenonTime: KindTimeObject,
		ResultTime:     KindInstant,
		ValidTime:      KindInterval,
	}
}

// DatastreamSchema returns the time properties of a Datastream, both of
// which summarise the observations as intervals.
func DatastreamSchema() Schema {
	return Schema{
		PhenomenonTime: KindInterval,
		ResultTime:     KindInterval,
	}
}
