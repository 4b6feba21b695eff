package seed

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/AhmedSalahALghzaly/lats-go/pkg/db"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/db/models"
	dbtypes "github.com/AhmedSalahALghzaly/lats-go/pkg/db/types"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/logger"
)

// Run populates the catalog on first boot. It is a no-op once any car
// brand exists, so restarting a live deployment never duplicates rows.
func Run(ctx context.Context, client *db.Client, logg *logger.Logger) error {
	var count int64
	if err := client.Gorm(ctx).Model(&models.CarBrand{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	logg.Info(ctx, "seeding catalog")

	carBrands := []models.CarBrand{
		{ID: "cb_toyota", Name: "Toyota"},
		{ID: "cb_mitsubishi", Name: "Mitsubishi"},
		{ID: "cb_mazda", Name: "Mazda"},
	}
	if err := client.Gorm(ctx).Create(&carBrands).Error; err != nil {
		return err
	}

	carModels := []models.CarModel{
		{ID: "cm_camry", CarBrandID: "cb_toyota", Name: "Camry", YearFrom: 2018, YearTo: 2024},
		{ID: "cm_corolla", CarBrandID: "cb_toyota", Name: "Corolla", YearFrom: 2019, YearTo: 2024},
		{ID: "cm_hilux", CarBrandID: "cb_toyota", Name: "Hilux", YearFrom: 2016, YearTo: 2024},
		{ID: "cm_lancer", CarBrandID: "cb_mitsubishi", Name: "Lancer", YearFrom: 2015, YearTo: 2020},
		{ID: "cm_pajero", CarBrandID: "cb_mitsubishi", Name: "Pajero", YearFrom: 2016, YearTo: 2024},
		{ID: "cm_mazda3", CarBrandID: "cb_mazda", Name: "Mazda 3", YearFrom: 2019, YearTo: 2024},
		{ID: "cm_cx5", CarBrandID: "cb_mazda", Name: "CX-5", YearFrom: 2017, YearTo: 2024},
	}
	if err := client.Gorm(ctx).Create(&carModels).Error; err != nil {
		return err
	}

	productBrands := []models.ProductBrand{
		{ID: "pb_kby", Name: "KBY"},
		{ID: "pb_ctr", Name: "CTR"},
		{ID: "pb_art", Name: "ART"},
	}
	if err := client.Gorm(ctx).Create(&productBrands).Error; err != nil {
		return err
	}

	categories := []models.Category{
		{ID: "cat_engine", Name: "Engine", Order: 1},
		{ID: "cat_suspension", Name: "Suspension", Order: 2},
		{ID: "cat_clutch", Name: "Clutch", Order: 3},
		{ID: "cat_electricity", Name: "Electricity", Order: 4},
		{ID: "cat_body", Name: "Body", Order: 5},
		{ID: "cat_tires", Name: "Tires", Order: 6},
		{ID: "cat_filters", Name: "Filters", ParentID: "cat_engine", Order: 1},
		{ID: "cat_spark_plugs", Name: "Spark Plugs", ParentID: "cat_engine", Order: 2},
		{ID: "cat_shock_absorbers", Name: "Shock Absorbers", ParentID: "cat_suspension", Order: 1},
		{ID: "cat_batteries", Name: "Batteries", ParentID: "cat_electricity", Order: 1},
		{ID: "cat_headlights", Name: "Headlights", ParentID: "cat_electricity", Order: 2},
		{ID: "cat_mirrors", Name: "Mirrors", ParentID: "cat_body", Order: 1},
	}
	if err := client.Gorm(ctx).Create(&categories).Error; err != nil {
		return err
	}

	products := []models.Product{
		{
			ID: "prod_oil_filter_1", Name: "Toyota Oil Filter",
			Price: decimal.RequireFromString("45.99"), PartNumber: "TOY-OIL-001",
			CategoryID: "cat_filters", ProductBrandID: "pb_kby",
			CarModelIDs: dbtypes.StringArray{"cm_camry", "cm_corolla"}, Stock: 50,
		},
		{
			ID: "prod_air_filter_1", Name: "Camry Air Filter",
			Price: decimal.RequireFromString("35.50"), PartNumber: "CAM-AIR-001",
			CategoryID: "cat_filters", ProductBrandID: "pb_ctr",
			CarModelIDs: dbtypes.StringArray{"cm_camry"}, Stock: 30,
		},
		{
			ID: "prod_spark_plug_1", Name: "Iridium Spark Plugs Set",
			Price: decimal.RequireFromString("89.99"), PartNumber: "SPK-IRD-001",
			CategoryID: "cat_spark_plugs", ProductBrandID: "pb_art",
			CarModelIDs: dbtypes.StringArray{"cm_camry", "cm_corolla", "cm_lancer"}, Stock: 25,
		},
		{
			ID: "prod_shock_1", Name: "Front Shock Absorber",
			Price: decimal.RequireFromString("125.00"), PartNumber: "SHK-FRT-001",
			CategoryID: "cat_shock_absorbers", ProductBrandID: "pb_kby",
			CarModelIDs: dbtypes.StringArray{"cm_hilux", "cm_pajero"}, Stock: 15,
		},
		{
			ID: "prod_battery_1", Name: "Car Battery 70Ah",
			Price: decimal.RequireFromString("185.00"), PartNumber: "BAT-70A-001",
			CategoryID: "cat_batteries", ProductBrandID: "pb_art",
			CarModelIDs: dbtypes.StringArray{"cm_camry", "cm_corolla", "cm_hilux", "cm_pajero"}, Stock: 20,
		},
		{
			ID: "prod_headlight_1", Name: "LED Headlight Bulb H7",
			Price: decimal.RequireFromString("55.00"), PartNumber: "LED-H7-001",
			CategoryID: "cat_headlights", ProductBrandID: "pb_kby",
			CarModelIDs: dbtypes.StringArray{"cm_mazda3", "cm_cx5"}, Stock: 40,
		},
		{
			ID: "prod_mirror_1", Name: "Side Mirror Right",
			Price: decimal.RequireFromString("145.00"), PartNumber: "MIR-R-001",
			CategoryID: "cat_mirrors", ProductBrandID: "pb_ctr",
			CarModelIDs: dbtypes.StringArray{"cm_camry"}, Stock: 10,
		},
		{
			ID: "prod_clutch_kit_1", Name: "Complete Clutch Kit",
			Price: decimal.RequireFromString("299.99"), PartNumber: "CLT-KIT-001",
			CategoryID: "cat_clutch", ProductBrandID: "pb_ctr",
			CarModelIDs: dbtypes.StringArray{"cm_lancer", "cm_mazda3"}, Stock: 8,
		},
	}
	if err := client.Gorm(ctx).Create(&products).Error; err != nil {
		return err
	}

	logg.Info(ctx, "catalog seeded")
	return nil
}
