package models

// socialStatusCatalog is the fixed list of status names (the backend's nameRu
// values) counted per family. Spelling, including stray whitespace, matches
// the backend byte for byte.
var socialStatusCatalog = []string{
	"Пенсионеры",
	"Участники и инвалиды ВОВ",
	"Лица, приравненные по льготам и гарантиям к участникам и инвалидам ВОВ",
	"Герои",
	"Участники ликвидации последствий катастрофы на Чернобыльской АЭС",
	"Лица, пострадавшие на Семипалатинском ядерном полигоне",
	"Жертвы политических репрессий",
	"Труженики тыла",
	"Лица, награжденные знаками высшей степени отличия, орденами и медалями, а также удостоенные почетных званий Республики Казахстан",
	"Многодетные матери, награжденные подвесками «Алтын алқа», «Күміс алқа» или получившие ранее звание «Мать-героиня», а также награжденные орденами «Материнская слава» I и II степени",
	"Лица, имеющие группу инвалидности",
	"Лица, осуществляющие уход за инвалидом первой группы с детства",
	"Граждане, имевшие по состоянию на 1 января 1998 года стаж работы по Списку N 1 производств, работ, профессий, должностей и показателей на подземных и открытых горных работах, на работах с особо вредными и особо тяжелыми условиями труда",
	"Граждане, имевшие по состоянию на 1 января 1998 года стаж работы по Списку N 2 производств, работ, профессий, должностей и показателей с вредными и тяжелыми условиями труда",
	"Кандасы",
	"Беременная женщина",
	"Семьи с детьми",
	"Лица обучающиеся в организациях образования, получившие или не имеющие образования",
	"Лица, отбывающие наказание по приговору суда в учреждениях уголовно-исполнительной (пенитенциарной) системы (за исключением учреждений минимальной безопасности)",
	"Лица, содержащиеся в следственных изоляторах",
	"Лица, имеющие судимость",
	"Лица, зарегистрированные в качестве ИП, ИПС и лиц, занимающихся частной практикой",
	"Лица, являющиеся учредителями юридического лица (государственного предприятия, хозяйственного товарищества, акционерного общества, производственного кооператива)",
	"Лица, зарегистрированные в качестве безработных",
	"Домохозяйки",
	"Получатели адресной социальной помощи",
	"Лица, потерявшие кормильца",
	"Лица, не имеющие определенного места жительства, документов",
	"Лица, признанные судом недееспособными или ограниченно-недееспособными",
	"Жертвы бытового насилия",
	"Жертвы торговли людьми",
	"Наемные работники",
	"Дети до 18 лет",
	"Лица, имеющие ЕСП",
	"Лица, имеющие соц отчисления",
	"Военные",
	"Иностранные граждане",
	"Лица пенсионного возраста без статуса",
	"Многодетные семьи",
	"Ветераны боевых действий на территории других государств",
	"Семьи погибших (умерших, пропавших без вести)   военнослужащих",
	"Получатель пособий",
	"Член многодетной семьи ",
	"Лица проживающие в Медико-социальных учреждениях",
	"Беженцы",
}
