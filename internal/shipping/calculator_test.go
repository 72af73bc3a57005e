package shipping

import (
	"math"
	"testing"

	"github.com/sivermarket/siver-backend/pkg/db/models"
)

const tolerance = 1e-6

func testCommune() *models.Commune {
	return &models.Commune{
		Code:                 "PAP",
		LocalDeliveryFee:     5,
		OperationalFee:       2,
		InsuranceRatePercent: 5,
		Active:               true,
	}
}

func testBrackets() []models.ShippingRateBracket {
	return []models.ShippingRateBracket{
		{MinWeightKg: 0, MaxWeightKg: 5, ChinaUSACostPerKg: 3, USADestCostPerLb: 2, Position: 0},
		{MinWeightKg: 5, MaxWeightKg: 20, ChinaUSACostPerKg: 2.5, USADestCostPerLb: 1.8, Position: 1},
	}
}

func TestCalculateWorkedExample(t *testing.T) {
	q := Calculate(Input{
		WeightGrams:    2000,
		ReferencePrice: 100,
		Commune:        testCommune(),
		Brackets:       testBrackets(),
	})
	if q == nil {
		t.Fatalf("expected a quote")
	}

	assertClose(t, "weight kg", q.WeightKg, 2.0)
	assertClose(t, "weight lb", q.WeightLb, 4.40924)
	assertClose(t, "china leg", q.ChinaUSACost, 6.0)
	assertClose(t, "usa-haiti leg", q.USAHaitiCost, 8.81848)
	assertClose(t, "insurance", q.InsuranceCost, 5.0)
	assertClose(t, "local fee", q.LocalDeliveryFee, 5.0)
	assertClose(t, "operational fee", q.OperationalFee, 2.0)
	assertClose(t, "total", q.Total, 26.81848)
}

func TestCalculateTotalIsSumOfComponents(t *testing.T) {
	q := Calculate(Input{
		WeightGrams:        3700,
		ReferencePrice:     249.99,
		Commune:            testCommune(),
		Brackets:           testBrackets(),
		CategorySurcharges: []float64{4.5, 1.25},
	})
	if q == nil {
		t.Fatalf("expected a quote")
	}
	sum := q.ChinaUSACost + q.USAHaitiCost + q.InsuranceCost + q.LocalDeliveryFee + q.OperationalFee
	if math.Abs(sum-q.Total) > tolerance {
		t.Fatalf("total %.9f differs from component sum %.9f", q.Total, sum)
	}
}

func TestCalculateIsDeterministic(t *testing.T) {
	in := Input{
		WeightGrams:    1234,
		ReferencePrice: 55.5,
		Commune:        testCommune(),
		Brackets:       testBrackets(),
	}
	first := Calculate(in)
	for i := 0; i < 10; i++ {
		again := Calculate(in)
		if *again != *first {
			t.Fatalf("quote changed between runs: %+v vs %+v", again, first)
		}
	}
}

func TestCalculateMonotonicInWeight(t *testing.T) {
	prev := 0.0
	for grams := 100.0; grams <= 30000; grams += 100 {
		q := Calculate(Input{
			WeightGrams:    grams,
			ReferencePrice: 10,
			Commune:        testCommune(),
			Brackets:       testBrackets(),
		})
		if q == nil {
			t.Fatalf("no quote at %.0fg", grams)
		}
		freight := q.ChinaUSACost + q.USAHaitiCost
		if freight+tolerance < prev {
			t.Fatalf("freight decreased at %.0fg: %.6f < %.6f", grams, freight, prev)
		}
		prev = freight
	}
}

func TestCalculateClampsBeyondLastBracket(t *testing.T) {
	q := Calculate(Input{
		WeightGrams:    50000, // 50kg, past the 20kg ceiling
		ReferencePrice: 10,
		Commune:        testCommune(),
		Brackets:       testBrackets(),
	})
	if q == nil {
		t.Fatalf("expected clamped quote")
	}
	assertClose(t, "china leg at clamp", q.ChinaUSACost, 50*2.5)
	assertClose(t, "usa leg at clamp", q.USAHaitiCost, 50*LbPerKg*1.8)
}

func TestCalculateNilWhenUnresolvable(t *testing.T) {
	if q := Calculate(Input{WeightGrams: 1000, Brackets: testBrackets()}); q != nil {
		t.Fatalf("expected nil quote without commune, got %+v", q)
	}
	if q := Calculate(Input{WeightGrams: 1000, Commune: testCommune()}); q != nil {
		t.Fatalf("expected nil quote without brackets, got %+v", q)
	}
	if q := Calculate(Input{WeightGrams: -1, Commune: testCommune(), Brackets: testBrackets()}); q != nil {
		t.Fatalf("expected nil quote for negative weight, got %+v", q)
	}
}

func TestCalculateInsuranceFloorsAtZero(t *testing.T) {
	commune := testCommune()
	commune.InsuranceRatePercent = 5
	q := Calculate(Input{
		WeightGrams:    1000,
		ReferencePrice: -20,
		Commune:        commune,
		Brackets:       testBrackets(),
	})
	if q == nil {
		t.Fatalf("expected a quote")
	}
	if q.InsuranceCost != 0 {
		t.Fatalf("insurance should floor at 0, got %.4f", q.InsuranceCost)
	}
}

func TestCalculateZeroWeight(t *testing.T) {
	q := Calculate(Input{
		WeightGrams:    0,
		ReferencePrice: 100,
		Commune:        testCommune(),
		Brackets:       testBrackets(),
	})
	if q == nil {
		t.Fatalf("expected a quote at zero weight")
	}
	assertClose(t, "china leg", q.ChinaUSACost, 0)
	assertClose(t, "usa leg", q.USAHaitiCost, 0)
	assertClose(t, "total", q.Total, 5+2+5)
}

func assertClose(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > tolerance {
		t.Fatalf("%s: got %.9f want %.9f", name, got, want)
	}
}
