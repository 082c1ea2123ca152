package catalog

// defaultProducts is the lavender bentonite price table, CLP with VAT.
var defaultProducts = []Product{
	{WeightKg: 8, PriceCLP: 6490, Description: "1 bolsa de 8 kg"},
	{WeightKg: 16, PriceCLP: 11990, Description: "2 bolsas de 8 kg"},
	{WeightKg: 20, PriceCLP: 13890, Description: "1 bolsa de 20 kg"},
	{WeightKg: 24, PriceCLP: 16990, Description: "3 bolsas de 8 kg"},
	{WeightKg: 28, PriceCLP: 18990, Description: "1 bolsa de 20 kg + 1 bolsa de 8 kg"},
	{WeightKg: 32, PriceCLP: 21990, Description: "4 bolsas de 8 kg"},
	{WeightKg: 40, PriceCLP: 26990, Description: "5 bolsas de 8 kg o 2 bolsas de 20 kg"},
}
