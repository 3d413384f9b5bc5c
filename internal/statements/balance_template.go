package statements

// Statutory balance sheet layout. Account codes follow the Slovak chart
// of accounts; correction codes are the contra accounts (accumulated
// depreciation 07x/08x, value adjustments 09x/19x/391) that net off
// gross asset values.

func assetTemplates() []LineTemplate {
	return []LineTemplate{
		{
			Label: "B", Name: "Neobežný majetok", Row: 2,
			Children: []LineTemplate{
				{
					Label: "B.I", Name: "Dlhodobý nehmotný majetok", Row: 3,
					AccountCodes:    []string{"012", "013", "014", "015", "019", "041"},
					CorrectionCodes: []string{"072", "073", "074", "075", "079", "091", "093"},
				},
				{
					Label: "B.II", Name: "Dlhodobý hmotný majetok", Row: 7,
					AccountCodes:    []string{"021", "022", "023", "025", "026", "029", "031", "032", "042"},
					CorrectionCodes: []string{"081", "082", "083", "085", "086", "089", "092", "094"},
				},
				{
					Label: "B.III", Name: "Dlhodobý finančný majetok", Row: 10,
					AccountCodes:    []string{"061", "062", "063", "065", "066", "069", "043"},
					CorrectionCodes: []string{"096"},
				},
			},
		},
		{
			Label: "C", Name: "Obežný majetok", Row: 12,
			Children: []LineTemplate{
				{
					Label: "C.I", Name: "Zásoby", Row: 13,
					AccountCodes:    []string{"112", "119", "121", "122", "123", "124", "131", "132", "133", "139"},
					CorrectionCodes: []string{"191", "192", "193", "194", "195", "196"},
				},
				{
					Label: "C.II", Name: "Pohľadávky", Row: 17,
					AccountCodes:    []string{"311", "312", "313", "314", "315", "335", "355", "378"},
					CorrectionCodes: []string{"391"},
				},
				{
					Label: "C.III", Name: "Finančné účty", Row: 21,
					AccountCodes: []string{"211", "213", "221", "251", "253", "256", "257", "261"},
				},
			},
		},
		{
			Label: "D", Name: "Časové rozlíšenie", Row: 26,
			AccountCodes: []string{"381", "382", "385"},
		},
		{
			Label: "", Name: "Spolu majetok", Row: 1,
			SumOfRows: []int{2, 12, 26},
		},
	}
}

func liabilityTemplates() []LineTemplate {
	return []LineTemplate{
		{
			Label: "A", Name: "Vlastné imanie", Row: 27,
			Children: []LineTemplate{
				{
					Label: "A.I", Name: "Základné imanie", Row: 28,
					AccountCodes: []string{"411", "412", "419"},
				},
				{
					Label: "A.II", Name: "Kapitálové fondy", Row: 29,
					AccountCodes: []string{"413", "414", "415", "417", "418"},
				},
				{
					Label: "A.III", Name: "Fondy zo zisku", Row: 30,
					AccountCodes: []string{"421", "422", "423", "427"},
				},
				{
					Label: "A.IV", Name: "Výsledok hospodárenia minulých rokov", Row: 31,
					AccountCodes: []string{"428", "429"},
				},
				{
					Label: "A.V", Name: "Výsledok hospodárenia za účtovné obdobie", Row: 32,
					AccountCodes: []string{"431"},
				},
			},
		},
		{
			Label: "B", Name: "Záväzky", Row: 33,
			Children: []LineTemplate{
				{
					Label: "B.I", Name: "Rezervy", Row: 34,
					AccountCodes: []string{"323", "451", "459"},
				},
				{
					Label: "B.II", Name: "Dlhodobé záväzky", Row: 35,
					AccountCodes: []string{"471", "472", "473", "474", "475", "476", "478", "479"},
				},
				{
					Label: "B.III", Name: "Krátkodobé záväzky", Row: 38,
					AccountCodes: []string{"321", "322", "324", "325", "326", "331", "333", "336", "341", "342", "343", "345", "364", "365", "366", "367", "379"},
				},
				{
					Label: "B.IV", Name: "Bankové úvery a výpomoci", Row: 39,
					AccountCodes: []string{"231", "232", "461"},
				},
			},
		},
		{
			Label: "C", Name: "Časové rozlíšenie", Row: 40,
			AccountCodes: []string{"383", "384"},
		},
		{
			Label: "", Name: "Spolu vlastné imanie a záväzky", Row: 41,
			SumOfRows: []int{27, 33, 40},
		},
	}
}
