package db

import (
	"github.com/minhasantafonte/santafonte-backend/internal/app/model"
	"github.com/minhasantafonte/santafonte-backend/pkg/logger"
	"gorm.io/gorm"
)

const unsplash = "https://images.unsplash.com/"

// SeedDB fills empty tables with the launch catalogue. Tables that already
// hold rows are left alone.
func SeedDB(gdb *gorm.DB) error {
	logger.Info("Seeding initial data...")

	if err := seedTable(gdb, &model.Product{}, "products", seedProducts()); err != nil {
		return err
	}
	if err := seedTable(gdb, &model.RosaryOption{}, "custom_options", seedRosaryOptions()); err != nil {
		return err
	}
	if err := seedTable(gdb, &model.Article{}, "articles", seedArticles()); err != nil {
		return err
	}
	if err := seedBasePrice(gdb); err != nil {
		return err
	}

	logger.Info("Initial data seeded successfully")
	return nil
}

func seedTable[T any](gdb *gorm.DB, sample interface{}, table string, rows []T) error {
	var count int64
	if err := gdb.Model(sample).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Table already seeded, skipping...", map[string]interface{}{
			"table":          table,
			"existing_count": count,
		})
		return nil
	}

	if err := gdb.Create(&rows).Error; err != nil {
		logger.Error("Failed to seed table", err, map[string]interface{}{
			"table": table,
		})
		return err
	}

	logger.Info("Table seeded", map[string]interface{}{
		"table": table,
		"rows":  len(rows),
	})
	return nil
}

func seedBasePrice(gdb *gorm.DB) error {
	row := model.StoreConfig{Key: model.ConfigBaseRosaryPrice, Value: model.DefaultBaseRosaryPrice}
	return gdb.Where(model.StoreConfig{Key: model.ConfigBaseRosaryPrice}).FirstOrCreate(&row).Error
}

func seedProducts() []model.Product {
	return []model.Product{
		{
			ID:          "1",
			Name:        "Nossa Senhora Aparecida 30cm",
			Category:    model.CategorySacredImages,
			Price:       189.90,
			Description: "Imagem de Nossa Senhora Aparecida em resina de alta qualidade com acabamento fino e manto detalhado em azul profundo e dourado. Perfeita para oratórios domésticos.",
			Image:       unsplash + "photo-1544427928-142f0685600b?auto=format&fit=crop&q=80&w=800",
			IsFeatured:  true,
			Stock:       15,
		},
		{
			ID:          "2",
			Name:        "Terço de Madeira Nobre",
			Category:    model.CategoryRosaries,
			Price:       45.00,
			Description: "Terço confeccionado manualmente com contas de madeira de reflorestamento, cordão resistente e crucifixo em metal envelhecido. Um item clássico de devoção.",
			Image:       unsplash + "photo-1590054036457-a5a6ed70e3ef?auto=format&fit=crop&q=80&w=800",
			IsFeatured:  true,
			Stock:       20,
		},
		{
			ID:          "3",
			Name:        "Bíblia Sagrada Luxo",
			Category:    model.CategoryBibles,
			Price:       120.00,
			Description: "Tradução oficial da CNBB com capa em couro sintético marrom e detalhes em hot stamping dourado. Inclui mapas e fitilho marcador.",
			Image:       unsplash + "photo-1515518554238-664448557997?auto=format&fit=crop&q=80&w=800",
			IsFeatured:  true,
			Stock:       8,
		},
		{
			ID:          "4",
			Name:        "Vela Aromática de Lavanda e Mirra",
			Category:    model.CategoryCandles,
			Price:       38.00,
			Description: "Vela artesanal feita com cera vegetal. Aroma suave que auxilia na concentração e cria um ambiente de paz para seus momentos de oração.",
			Image:       unsplash + "photo-1570823104626-0b195213a93a?auto=format&fit=crop&q=80&w=800",
			Stock:       35,
		},
		{
			ID:          "5",
			Name:        "Quadro Oração de São Francisco",
			Category:    model.CategoryFramedPrints,
			Price:       75.00,
			Description: "Quadro com moldura em madeira clara e tipografia elegante. Traz a oração da paz para decorar e abençoar seu lar.",
			Image:       unsplash + "photo-1518640467707-6811f4a6ab73?auto=format&fit=crop&q=80&w=800",
			Stock:       5,
		},
		{
			ID:          "6",
			Name:        "Porta Bíblia em Ferro Forjado",
			Category:    model.CategoryPrayerItems,
			Price:       98.50,
			Description: "Suporte elegante e resistente para manter a Palavra de Deus em destaque. Design artesanal com acabamento em pintura eletrostática.",
			Image:       unsplash + "photo-1548623917-2fbc78919640?auto=format&fit=crop&q=80&w=800",
			Stock:       2,
		},
	}
}

func seedRosaryOptions() []model.RosaryOption {
	return []model.RosaryOption{
		{ID: "m1", Type: model.OptionMaterial, Name: "Madeira Nobre", Price: 0, Image: unsplash + "photo-1590054036457-a5a6ed70e3ef?auto=format&fit=crop&q=80&w=300"},
		{ID: "m2", Type: model.OptionMaterial, Name: "Cristal Lapidado", Price: 25.00, Image: unsplash + "photo-1605100804763-247f67b3557e?auto=format&fit=crop&q=80&w=300"},
		{ID: "m3", Type: model.OptionMaterial, Name: "Pérola Sintética", Price: 15.00, Image: unsplash + "photo-1533130061792-64b345e4a833?auto=format&fit=crop&q=80&w=300"},

		{ID: "c1", Type: model.OptionColor, Name: "Azul Mariano", Price: 0},
		{ID: "c2", Type: model.OptionColor, Name: "Branco Pérola", Price: 0},
		{ID: "c3", Type: model.OptionColor, Name: "Rosa Místico", Price: 5.00},
		{ID: "c4", Type: model.OptionColor, Name: "Preto Devoto", Price: 0},

		{ID: "cr1", Type: model.OptionCrucifix, Name: "Crucifixo Clássico", Price: 0, Image: unsplash + "photo-1544427928-142f0685600b?auto=format&fit=crop&q=80&w=300"},
		{ID: "cr2", Type: model.OptionCrucifix, Name: "Cruz de São Bento", Price: 12.00, Image: unsplash + "photo-1515518554238-664448557997?auto=format&fit=crop&q=80&w=300"},
	}
}

func seedArticles() []model.Article {
	return []model.Article{
		{
			ID:      "a1",
			Title:   "A Importância do Terço Diário",
			Excerpt: "Descubra como a meditação dos mistérios pode transformar sua rotina e trazer paz interior.",
			Content: "O Santo Terço é uma das orações mais queridas da tradição cristã...",
			Date:    "12 Mar 2024",
			Image:   unsplash + "photo-1590054036457-a5a6ed70e3ef?auto=format&fit=crop&q=80&w=800",
		},
		{
			ID:      "a2",
			Title:   "Preparando o Advento em Família",
			Excerpt: "Dicas práticas para vivenciar o tempo de espera pelo Natal com espiritualidade e união.",
			Content: "O Advento é um tempo de alegria e expectativa...",
			Date:    "05 Dez 2023",
			Image:   unsplash + "photo-1543258103-a62bdc069871?auto=format&fit=crop&q=80&w=800",
		},
	}
}
