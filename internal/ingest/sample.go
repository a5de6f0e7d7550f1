package ingest

// sampleCSV is the downloadable template.
const sampleCSV = `Date,Supplier,Material,Weight,Distance,TransportMode,Region
2024-01-10,Tesla Energy,Aluminum,1500,800,Cargo Ship,North America
2024-02-05,Vulcan Steel,Steel,5000,120,Heavy Duty Truck,Europe
2024-03-12,GreenPolymer,Plastic,800,2400,Cargo Ship,Asia
2024-04-10,Ameco Logistics,Steel,2200,450,Heavy Duty Truck,Asia
`

// SampleCSV returns a template upload with the canonical headers and four example rows.
func SampleCSV() string {
	return sampleCSV
}
