package curriculum

var chapters = []Chapter{
	{
		ID:    "chap1",
		Title: "Chương 1: Vật Lí Nhiệt",
		Lessons: []Lesson{
			{ID: "l1", Title: "Bài 1: Sự chuyển thể", Chapter: "Chương 1"},
			{ID: "l2", Title: "Bài 2: Thang nhiệt độ", Chapter: "Chương 1"},
			{ID: "l3", Title: "Bài 3: Nội năng. Định luật 1 của nhiệt động lực học", Chapter: "Chương 1"},
			{ID: "l4", Title: "Bài 4: Nhiệt dung riêng, Nhiệt nóng chảy riêng, Nhiệt hoá hơi riêng", Chapter: "Chương 1"},
		},
	},
	{
		ID:    "chap2",
		Title: "Chương 2: Khí Lý Tưởng",
		Lessons: []Lesson{
			{ID: "l5", Title: "Bài 5: Thuyết động học phân tử chất khí", Chapter: "Chương 2"},
			{ID: "l6", Title: "Bài 6: Định luật Boyle. Định luật Charles", Chapter: "Chương 2"},
			{ID: "l7", Title: "Bài 7: Phương trình trạng thái của khí lí tưởng", Chapter: "Chương 2"},
			{ID: "l8", Title: "Bài 8: Áp suất động học của phân tử khí", Chapter: "Chương 2"},
		},
	},
	{
		ID:    "chap3",
		Title: "Chương 3: Từ Trường",
		Lessons: []Lesson{
			{ID: "l9", Title: "Bài 9: Khái niệm từ trường", Chapter: "Chương 3"},
			{ID: "l10", Title: "Bài 10: Lực từ. Cảm ứng từ", Chapter: "Chương 3"},
			{ID: "l11", Title: "Bài 11: Thực hành đo cảm ứng từ", Chapter: "Chương 3"},
		},
	},
	{
		ID:    "chap4",
		Title: "Chương 4: Vật Lí Hạt Nhân",
		Lessons: []Lesson{
			{ID: "l12", Title: "Bài 12: Cấu trúc hạt nhân", Chapter: "Chương 4"},
			{ID: "l13", Title: "Bài 13: Phản ứng hạt nhân", Chapter: "Chương 4"},
			{ID: "l14", Title: "Bài 14: Phóng xạ và ứng dụng", Chapter: "Chương 4"},
		},
	},
}
