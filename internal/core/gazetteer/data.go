package gazetteer

import "github.com/sentuhanid/geomatch/internal/core/domain"

// serviceAreas is the hand-curated launch coverage. Coordinates point at the
// commercial center of each area, not the administrative centroid.
var serviceAreas = []Entry{
	// Jawa
	{Name: "Jakarta", Region: "Jawa", Coordinate: domain.Coordinate{Lat: -6.2088, Lng: 106.8456}, MajorCity: true,
		Aliases: []string{"DKI Jakarta", "Jakarta Pusat", "DKI"}},
	{Name: "Bandung", Region: "Jawa", Coordinate: domain.Coordinate{Lat: -6.9175, Lng: 107.6191}, MajorCity: true},
	{Name: "Surabaya", Region: "Jawa", Coordinate: domain.Coordinate{Lat: -7.2575, Lng: 112.7521}, MajorCity: true},
	{Name: "Semarang", Region: "Jawa", Coordinate: domain.Coordinate{Lat: -6.9667, Lng: 110.4167}, MajorCity: true},
	{Name: "Yogyakarta", Region: "Jawa", Coordinate: domain.Coordinate{Lat: -7.7956, Lng: 110.3695}, MajorCity: true, TouristDestination: true,
		Aliases: []string{"Jogja", "Yogya", "Jogjakarta", "Djogja"}},
	{Name: "Surakarta", Region: "Jawa", Coordinate: domain.Coordinate{Lat: -7.5755, Lng: 110.8243},
		Aliases: []string{"Solo"}},
	{Name: "Malang", Region: "Jawa", Coordinate: domain.Coordinate{Lat: -7.9666, Lng: 112.6326}},
	{Name: "Batu", Region: "Jawa", Coordinate: domain.Coordinate{Lat: -7.8671, Lng: 112.5239}, TouristDestination: true,
		Aliases: []string{"Kota Batu"}},
	{Name: "Bogor", Region: "Jawa", Coordinate: domain.Coordinate{Lat: -6.5971, Lng: 106.8060}},
	{Name: "Depok", Region: "Jawa", Coordinate: domain.Coordinate{Lat: -6.4025, Lng: 106.7942}},
	{Name: "Tangerang", Region: "Jawa", Coordinate: domain.Coordinate{Lat: -6.1783, Lng: 106.6319}},
	{Name: "Tangerang Selatan", Region: "Jawa", Coordinate: domain.Coordinate{Lat: -6.2886, Lng: 106.7179},
		Aliases: []string{"Tangsel", "BSD"}},
	{Name: "Bekasi", Region: "Jawa", Coordinate: domain.Coordinate{Lat: -6.2383, Lng: 106.9756}},
	{Name: "Cirebon", Region: "Jawa", Coordinate: domain.Coordinate{Lat: -6.7320, Lng: 108.5523}},
	{Name: "Banyuwangi", Region: "Jawa", Coordinate: domain.Coordinate{Lat: -8.2192, Lng: 114.3691}, TouristDestination: true},

	// Bali
	{Name: "Denpasar", Region: "Bali", Coordinate: domain.Coordinate{Lat: -8.6705, Lng: 115.2126}, MajorCity: true},
	{Name: "Kuta", Region: "Bali", Coordinate: domain.Coordinate{Lat: -8.7237, Lng: 115.1750}, TouristDestination: true},
	{Name: "Seminyak", Region: "Bali", Coordinate: domain.Coordinate{Lat: -8.6913, Lng: 115.1682}, TouristDestination: true},
	{Name: "Canggu", Region: "Bali", Coordinate: domain.Coordinate{Lat: -8.6478, Lng: 115.1385}, TouristDestination: true},
	{Name: "Ubud", Region: "Bali", Coordinate: domain.Coordinate{Lat: -8.5069, Lng: 115.2625}, TouristDestination: true},
	{Name: "Sanur", Region: "Bali", Coordinate: domain.Coordinate{Lat: -8.6878, Lng: 115.2621}, TouristDestination: true},
	{Name: "Nusa Dua", Region: "Bali", Coordinate: domain.Coordinate{Lat: -8.8034, Lng: 115.2318}, TouristDestination: true},

	// Sumatera
	{Name: "Medan", Region: "Sumatera", Coordinate: domain.Coordinate{Lat: 3.5952, Lng: 98.6722}, MajorCity: true},
	{Name: "Palembang", Region: "Sumatera", Coordinate: domain.Coordinate{Lat: -2.9761, Lng: 104.7754}, MajorCity: true},
	{Name: "Padang", Region: "Sumatera", Coordinate: domain.Coordinate{Lat: -0.9471, Lng: 100.4172}},
	{Name: "Pekanbaru", Region: "Sumatera", Coordinate: domain.Coordinate{Lat: 0.5071, Lng: 101.4478}},
	{Name: "Bandar Lampung", Region: "Sumatera", Coordinate: domain.Coordinate{Lat: -5.3971, Lng: 105.2668},
		Aliases: []string{"Lampung"}},
	{Name: "Batam", Region: "Sumatera", Coordinate: domain.Coordinate{Lat: 1.0456, Lng: 104.0305}},
	{Name: "Banda Aceh", Region: "Sumatera", Coordinate: domain.Coordinate{Lat: 5.5483, Lng: 95.3238}},

	// Kalimantan
	{Name: "Balikpapan", Region: "Kalimantan", Coordinate: domain.Coordinate{Lat: -1.2379, Lng: 116.8529}},
	{Name: "Samarinda", Region: "Kalimantan", Coordinate: domain.Coordinate{Lat: -0.4948, Lng: 117.1436}},
	{Name: "Pontianak", Region: "Kalimantan", Coordinate: domain.Coordinate{Lat: -0.0263, Lng: 109.3425}},
	{Name: "Banjarmasin", Region: "Kalimantan", Coordinate: domain.Coordinate{Lat: -3.3186, Lng: 114.5944}},

	// Sulawesi
	{Name: "Makassar", Region: "Sulawesi", Coordinate: domain.Coordinate{Lat: -5.1477, Lng: 119.4327}, MajorCity: true,
		Aliases: []string{"Ujung Pandang"}},
	{Name: "Manado", Region: "Sulawesi", Coordinate: domain.Coordinate{Lat: 1.4748, Lng: 124.8421}, TouristDestination: true},

	// Nusa Tenggara
	{Name: "Mataram", Region: "Nusa Tenggara", Coordinate: domain.Coordinate{Lat: -8.5833, Lng: 116.1167},
		Aliases: []string{"Lombok"}},
	{Name: "Labuan Bajo", Region: "Nusa Tenggara", Coordinate: domain.Coordinate{Lat: -8.4964, Lng: 119.8877}, TouristDestination: true},
	{Name: "Kupang", Region: "Nusa Tenggara", Coordinate: domain.Coordinate{Lat: -10.1772, Lng: 123.6070}},
}
