package catalog

// categoryOrder fixes the display order of categories.
var categoryOrder = []string{
	"Pain & Fever",
	"Cough & Cold",
	"Digestive & Gastric",
	"Vitamins & Supplements",
	"Skin Care",
	"Eye & Ear Care",
	"Antibiotics",
	"Diabetes Care",
	"Cardiac & BP",
	"Women's Health",
	"First Aid",
	"Mental Health & Sleep",
	"Muscle & Joint",
}

// defaultCategories maps each category to its medicines, in catalog order.
var defaultCategories = map[string][]string{
	"Pain & Fever": {
		"Crocin (Paracetamol)", "Dolo 650 (Paracetamol)", "Combiflam (Ibuprofen+Paracetamol)",
		"Disprin (Aspirin)", "Brufen (Ibuprofen)", "Nise (Nimesulide)", "Voveran (Diclofenac)",
		"Ultracet (Tramadol)", "Sumo (Nimesulide+Paracetamol)", "Saridon (Paracetamol+Caffeine)",
	},
	"Cough & Cold": {
		"Benadryl Syrup (Cough)", "Cetirizine (Anti-allergy)", "Allegra (Fexofenadine)",
		"Montair LC (Montelukast)", "Sinarest (Cold Relief)", "Vicks VapoRub", "Otrivin Nasal Spray",
		"Asthalin Inhaler", "Levolin Inhaler", "Grilinctus Syrup", "Chericof Syrup", "Honitus Syrup",
	},
	"Digestive & Gastric": {
		"Digene (Antacid)", "Gelusil MPS (Antacid)", "Eno (Antacid)", "Pan D (Pantoprazole)",
		"Omez (Omeprazole)", "Ranitidine", "Dulcolax (Laxative)", "Cremaffin (Laxative)",
		"Imodium (Anti-diarrheal)", "Norflox TZ (Antibiotic)", "ORS Electral", "Econorm (Probiotic)",
		"Enterogermina (Probiotic)",
	},
	"Vitamins & Supplements": {
		"Livogen (Iron+Folic Acid)", "Shelcal (Calcium+D3)", "Becosules (B-Complex)",
		"Supradyn (Multivitamin)", "Zincovit (Zinc+Vitamins)", "Limcee (Vitamin C)",
		"Evion (Vitamin E)", "Revital (Multivitamin)", "A to Z NS (Multivitamin)", "Calcimax P (Calcium)",
	},
	"Skin Care": {
		"Neutrogena Sunscreen", "Betadine (Antiseptic)", "Soframycin (Antibiotic Cream)",
		"Candid B (Antifungal)", "Clobetasol Cream", "Dermadew Soap", "Lacto Calamine Lotion",
		"Boroline (Antiseptic Cream)", "Dettol Antiseptic", "Himalaya Neem Face Wash",
	},
	"Eye & Ear Care": {
		"Ciprofloxacin Eye Drops", "Moxifloxacin Eye Drops", "Tears Naturale (Eye Lubricant)",
		"Otorex Ear Drops", "Ciplox D Eye Drops",
	},
	"Antibiotics": {
		"Amoxicillin", "Azithromycin (Azee)", "Ciprofloxacin", "Metronidazole (Flagyl)",
		"Cefixime (Zifi)", "Augmentin (Amox+Clav)", "Ofloxacin", "Doxycycline",
	},
	"Diabetes Care": {
		"Metformin", "Glimepiride", "Glucometer Strips", "Insulin Syringes",
	},
	"Cardiac & BP": {
		"Amlodipine", "Atenolol", "Telmisartan", "Aspirin 75mg (Ecosprin)", "Atorvastatin", "Clopidogrel",
	},
	"Women's Health": {
		"Meftal Spas (Mefenamic)", "Cyclopam (Antispasmodic)", "Folvite (Folic Acid)",
		"Dydrogesterone", "i-Pill (Emergency Contraceptive)",
	},
	"First Aid": {
		"Electral (ORS)", "Band-Aid", "Cotton Roll", "Surgical Tape", "Thermometer", "BP Monitor", "Pulse Oximeter",
	},
	"Mental Health & Sleep": {
		"Alprazolam", "Clonazepam", "Melatonin",
	},
	"Muscle & Joint": {
		"Volini Gel", "Moov Spray", "Iodex Balm", "Flexon MR (Muscle Relaxant)", "Thiocolchicoside",
	},
}

// OtherCategory is reported for names outside the catalog.
const OtherCategory = "Other"

// DefaultMedicines returns the full catalog in category order.
func DefaultMedicines() []string {
	var names []string
	for _, category := range categoryOrder {
		names = append(names, defaultCategories[category]...)
	}
	return names
}
