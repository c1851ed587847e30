package database

import "github.com/Ayu2427/Personal-doctor/internal/domain/entities"

// DemoCatalog returns the fixed demo condition catalog seeded at
// startup. Patterns are comma-delimited symptom tokens; matching is
// substring containment of the query within the pattern.
func DemoCatalog() []entities.ConditionRecord {
	return []entities.ConditionRecord{
		{SymptomPattern: "headache,cold", ConditionName: "Common Cold", Medicines: "Paracetamol, Vitamin C"},
		{SymptomPattern: "fever", ConditionName: "Viral Fever", Medicines: "Ibuprofen, ORS solution"},
		{SymptomPattern: "stomach pain", ConditionName: "Gastritis", Medicines: "Antacid syrup, Omeprazole"},
		{SymptomPattern: "cough", ConditionName: "Bronchitis", Medicines: "Cough syrup, Honey ginger tea"},
		{SymptomPattern: "sneezing,runny nose", ConditionName: "Allergic Rhinitis", Medicines: "Cetirizine, Loratadine"},
		{SymptomPattern: "headache,nausea", ConditionName: "Migraine", Medicines: "Sumatriptan, Naproxen"},
		{SymptomPattern: "thirst,frequent urination", ConditionName: "Diabetes (possible)", Medicines: "Metformin (doctor prescribed only)"},
		{SymptomPattern: "fatigue,weakness", ConditionName: "Anemia (possible)", Medicines: "Iron supplements, Folic acid"},
		{SymptomPattern: "shortness of breath,chest pain", ConditionName: "Angina (possible)", Medicines: "Aspirin (doctor prescribed only)"},
		{SymptomPattern: "sore throat", ConditionName: "Pharyngitis", Medicines: "Warm saline gargle, Lozenges"},
	}
}
