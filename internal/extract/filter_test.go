package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"carvaluator/internal/models"
)

func TestFilter(t *testing.T) {
	base := models.VehicleRecord{Year: 2015, Make: "Toyota", Model: "Corolla"}

	with := func(price, mileage int) models.VehicleRecord {
		r := base
		r.Price = price
		r.Mileage = mileage
		return r
	}

	records := []models.VehicleRecord{
		with(12345, 90000),  // placeholder
		with(1234567, 0),    // placeholder and no mileage
		with(9000, 0),       // mileage unknown
		with(500, 50000),    // kept
		with(100, 50000),    // at the floor
		with(101, 50000),    // kept
		with(15000, 120000), // kept
	}

	kept := Filter(records)

	assert.Equal(t, []models.VehicleRecord{with(500, 50000), with(101, 50000), with(15000, 120000)}, kept)
}

func TestFilterPlaceholderAlwaysDropped(t *testing.T) {
	for _, price := range []int{1, 12, 123, 1234, 12345, 123456, 1234567} {
		r := models.VehicleRecord{Year: 2015, Make: "Toyota", Model: "Corolla", Price: price, Mileage: 80000}
		assert.Empty(t, Filter([]models.VehicleRecord{r}), "price %d", price)
	}
}

func TestFilterWithCustomFloor(t *testing.T) {
	records := []models.VehicleRecord{{Year: 2015, Price: 500, Mileage: 50000}, {Year: 2015, Price: 5000, Mileage: 50000}}

	kept := FilterWith(records, FilterOptions{PriceFloor: 1000})

	assert.Len(t, kept, 1)
	assert.Equal(t, 5000, kept[0].Price)
	assert.Len(t, records, 2, "input must not be modified")
}
