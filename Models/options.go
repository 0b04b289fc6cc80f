package Models

// Option is one checkbox or radio value of the form.
type Option struct {
	Key   string
	Label string
}

// Group is a fixed, ordered list of options stored under one form field.
type Group struct {
	Field   string
	Title   string
	Options []Option
}

// Label returns the display label of key, or key itself when unknown.
func (g Group) Label(key string) string {
	for _, o := range g.Options {
		if o.Key == key {
			return o.Label
		}
	}
	return key
}

func (g Group) Has(key string) bool {
	for _, o := range g.Options {
		if o.Key == key {
			return true
		}
	}
	return false
}

// ChecklistGroups are the multi-select groups, laid out three per row.
var ChecklistGroups = [][]Group{
	{
		{Field: "acessorios", Title: "Acessórios", Options: []Option{
			{"bagageiro", "Bagageiro"}, {"antena", "Antena"}, {"triangulo", "Triângulo"}, {"macaco", "Macaco"},
			{"chave_roda", "Chave de Roda"}, {"extintor", "Extintor"}, {"tapetes", "Tapetes"},
		}},
		{Field: "sistema_eletrico", Title: "Irregularidades Elétricas", Options: []Option{
			{"painel", "Painel"}, {"buzina", "Buzina"}, {"luzes_internas", "Luzes Internas"}, {"farol", "Farol"},
			{"limpador_parabrisa", "Limpador"}, {"setas", "Setas"},
		}},
		{Field: "freios", Title: "Irregularidades de Freios", Options: []Option{
			{"puxando", "Puxando"}, {"trepidando", "Trepidando"}, {"nao_segura", "Não Segura"}, {"batendo", "Batendo"},
		}},
	},
	{
		{Field: "motor", Title: "Irregularidades de Motor", Options: []Option{
			{"falha_partida", "Falha na Partida"}, {"sem_forca", "Sem Força"}, {"oleo_baixo", "Óleo Baixo"},
			{"vazando", "Vazando"}, {"aquecendo", "Aquecendo"},
		}},
		{Field: "eixo_suspensao", Title: "Irregularidades de Eixo/Susp.", Options: []Option{
			{"puxando", "Puxando"}, {"trepidando", "Trepidando"}, {"batendo", "Batendo"}, {"com_folga", "Com Folga"},
		}},
		{Field: "documentacao", Title: "Documentação", Options: []Option{
			{"vencido", "Vencido"}, {"faltando", "Faltando"},
		}},
	},
}

var tireConditions = []Option{{"bom", "Bom"}, {"regular", "Regular"}, {"ruim", "Ruim"}}

// TireGroups are the single-select tyre condition groups.
var TireGroups = []Group{
	{Field: "pneus_dianteiros", Title: "Pneus Dianteiros", Options: tireConditions},
	{Field: "pneus_traseiros", Title: "Pneus Traseiros", Options: tireConditions},
	{Field: "estepe", Title: "Estepe", Options: tireConditions},
}

// LookupGroup finds a multi-select group by its form field name.
func LookupGroup(field string) (Group, bool) {
	for _, row := range ChecklistGroups {
		for _, g := range row {
			if g.Field == field {
				return g, true
			}
		}
	}
	return Group{}, false
}
