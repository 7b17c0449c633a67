// Package texts holds the localized message table (en/tr/ru) and resolves
// the right translation for a user's stored language preference.
package texts

import "context"

var messages = map[string]map[string]string{
	"choose_language_prompt": {
		"en": "🌐 Choose your language:",
		"tr": "🌐 Dilinizi seçin:",
		"ru": "🌐 Выберите язык:",
	},
	"lang_set_confirm": {
		"en": "✅ Language set!",
		"tr": "✅ Dil seçildi!",
		"ru": "✅ Язык выбран!",
	},
	"start_welcome": {
		"en": "👋 Welcome — CantaOrtak!\n\n" +
			"You can post orders or trips.\n\n" +
			"Commands:\n" +
			"/post_order - Post an order\n" +
			"/post_trip - Post a trip\n" +
			"/list - See active listings\n" +
			"/my - Your listings\n" +
			"/profile - Your profile",
		"tr": "👋 Hoş geldiniz — CantaOrtak!\n\n" +
			"Sipariş verebilir veya yolculuk ilanı ekleyebilirsiniz.\n\n" +
			"Komutlar:\n" +
			"/post_order - Sipariş ekle\n" +
			"/post_trip - Yolculuk ekle\n" +
			"/list - İlanları gör\n" +
			"/my - İlanlarınız\n" +
			"/profile - Profiliniz",
		"ru": "👋 Добро пожаловать — CantaOrtak!\n\n" +
			"Вы можете разместить заказ или поездку.\n\n" +
			"Команды:\n" +
			"/post_order - Разместить заказ\n" +
			"/post_trip - Разместить поездку\n" +
			"/list - Активные объявления\n" +
			"/my - Ваши объявления\n" +
			"/profile - Ваш профиль",
	},
	"profile_not_found": {
		"en": "Profile not found. Use /start to register.",
		"tr": "Profil bulunamadı. Kayıt için /start kullanın.",
		"ru": "Профиль не найден. Для регистрации используйте /start.",
	},
	"profile": {
		"en": "👤 Profile:\nName: %s\nUsername: @%s\nRegistered: %s\nLanguage: %s",
		"tr": "👤 Profil:\nAd: %s\nKullanıcı adı: @%s\nKayıt: %s\nDil: %s",
		"ru": "👤 Профиль:\nИмя: %s\nИмя пользователя: @%s\nРегистрация: %s\nЯзык: %s",
	},
	"ask_product": {
		"en": "📦 Enter product name (e.g. iPhone cable):",
		"tr": "📦 Ürün adını yazın (örn: iPhone kablo):",
		"ru": "📦 Введите название товара (например: кабель iPhone):",
	},
	"ask_weight": {
		"en": "⚖️ Enter approximate weight in kg (e.g. 0.3):",
		"tr": "⚖️ Yaklaşık ağırlığı (kg) yazın (örn: 0.3):",
		"ru": "⚖️ Введите приблизительный вес (кг), напр. 0.3:",
	},
	"ask_from": {
		"en": "📍 From which city (e.g. Istanbul):",
		"tr": "📍 Hangi şehirden (örn: İstanbul):",
		"ru": "📍 Из какого города (например: Стамбул):",
	},
	"ask_to": {
		"en": "🏠 To which city (e.g. Lefkoşa):",
		"tr": "🏠 Hangi şehire (örn: Lefkoşa):",
		"ru": "🏠 В какой город (например: Лефкоша):",
	},
	"ask_price": {
		"en": "💰 Enter your offered price (e.g. 10€):",
		"tr": "💰 Teklif ettiğiniz ücreti yazın (örn: 10€):",
		"ru": "💰 Введите вашу цену (например: 10€):",
	},
	"ask_expiry": {
		"en": "⏳ For how many days should the order stay active? Enter a number of days (e.g. 7) or a date (YYYY-MM-DD):",
		"tr": "⏳ Sipariş kaç gün aktif kalsın? Gün sayısı (örn: 7) veya tarih (YYYY-AA-GG) girin:",
		"ru": "⏳ Сколько дней заказ должен быть активен? Введите число дней (напр. 7) или дату (ГГГГ-ММ-ДД):",
	},
	"invalid_expiry": {
		"en": "❗ Invalid expiry. Enter a positive number of days or a future date (YYYY-MM-DD):",
		"tr": "❗ Geçersiz süre. Pozitif gün sayısı veya gelecek bir tarih (YYYY-AA-GG) girin:",
		"ru": "❗ Неверный срок. Введите положительное число дней или будущую дату (ГГГГ-ММ-ДД):",
	},
	"order_posted": {
		"en": "✅ Your order has been posted! Use /list to view.",
		"tr": "✅ Siparişiniz yayınlandı! Görmek için /list kullanın.",
		"ru": "✅ Ваш заказ опубликован! Для просмотра используйте /list.",
	},
	"ask_trip_from": {
		"en": "📍 Which city are you departing from?",
		"tr": "📍 Hangi şehirden gidiyorsunuz?",
		"ru": "📍 Из какого города вы отправляетесь?",
	},
	"ask_trip_to": {
		"en": "📍 Which city are you going to?",
		"tr": "📍 Hangi şehire gidiyorsunuz?",
		"ru": "📍 В какой город вы направляетесь?",
	},
	"ask_trip_date": {
		"en": "📅 Enter date (YYYY-MM-DD), e.g. 2025-10-15:",
		"tr": "📅 Tarih girin (YYYY-AA-GG), örn: 2025-10-15:",
		"ru": "📅 Введите дату (ГГГГ-ММ-ДД), например: 2025-10-15:",
	},
	"invalid_date": {
		"en": "❗ Invalid date. Enter a future date as YYYY-MM-DD:",
		"tr": "❗ Geçersiz tarih. Gelecek bir tarihi YYYY-AA-GG olarak girin:",
		"ru": "❗ Неверная дата. Введите будущую дату в формате ГГГГ-ММ-ДД:",
	},
	"ask_trip_capacity": {
		"en": "⚖️ Enter available capacity (kg):",
		"tr": "⚖️ Boş kapasite (kg) yazın:",
		"ru": "⚖️ Введите доступную вместимость (кг):",
	},
	"ask_trip_price": {
		"en": "💵 Enter price (e.g. 2€/kg):",
		"tr": "💵 Fiyat yazın (örn: 2€/kg):",
		"ru": "💵 Укажите цену (напр.: 2€/кг):",
	},
	"trip_posted": {
		"en": "✅ Trip published! Use /list to view.",
		"tr": "✅ Yolculuk ilanınız yayınlandı! /list ile görebilirsiniz.",
		"ru": "✅ Поездка опубликована! Используйте /list для просмотра.",
	},
	"list_no_active": {
		"en": "There are no active listings right now.",
		"tr": "Şu anda aktif ilan yok.",
		"ru": "Сейчас активных объявлений нет.",
	},
	"list_header": {
		"en": "🔎 Recent listings:",
		"tr": "🔎 Son ilanlar:",
		"ru": "🔎 Последние объявления:",
	},
	"my_no_active": {
		"en": "You have no active listings.",
		"tr": "Aktif ilanınız yok.",
		"ru": "У вас нет активных объявлений.",
	},
	"my_header": {
		"en": "🗂 Your active listings:",
		"tr": "🗂 Aktif ilanlarınız:",
		"ru": "🗂 Ваши активные объявления:",
	},
	"deactivated": {
		"en": "✅ Listing deactivated.",
		"tr": "✅ İlan kaldırıldı.",
		"ru": "✅ Объявление снято.",
	},
	"listing_not_found": {
		"en": "Listing not found.",
		"tr": "İlan bulunamadı.",
		"ru": "Объявление не найдено.",
	},
	"contact_sent_success": {
		"en": "✅ Contact request sent to the owner. They will reply if interested.",
		"tr": "✅ İletişim isteği ilan sahibine gönderildi. Cevap verirse haber alacaksınız.",
		"ru": "✅ Запрос на контакт отправлен владельцу. Если заинтересован — ответит.",
	},
	"contact_sent_failed": {
		"en": "❗ Cannot send message to the owner (they might be blocked/offline).",
		"tr": "❗ Sahibine mesaj gönderilemedi (bloklama veya offline olabilir).",
		"ru": "❗ Не удалось отправить сообщение владельцу (возможно, заблокирован/офлайн).",
	},
	"contact_request_order": {
		"en": "📩 Your <b>Order #%d</b> has a contact request.\n\nRequester: %s\nUsername: @%s\n\nProduct: %s\n\nRespond if you want to proceed.",
		"tr": "📩 <b>Sipariş #%d</b> ilanınıza iletişim isteği geldi.\n\nİsteyen: %s\nKullanıcı adı: @%s\n\nÜrün: %s\n\nDevam etmek isterseniz cevap verin.",
		"ru": "📩 По вашему <b>заказу #%d</b> поступил запрос на контакт.\n\nОтправитель: %s\nИмя пользователя: @%s\n\nТовар: %s\n\nОтветьте, если хотите продолжить.",
	},
	"contact_request_trip": {
		"en": "📩 Your <b>Trip #%d</b> has a contact request.\n\nRequester: %s\nUsername: @%s\nRoute: %s → %s (Date: %s)\n\nRespond if you want to proceed.",
		"tr": "📩 <b>Yolculuk #%d</b> ilanınıza iletişim isteği geldi.\n\nİsteyen: %s\nKullanıcı adı: @%s\nGüzergah: %s → %s (Tarih: %s)\n\nDevam etmek isterseniz cevap verin.",
		"ru": "📩 По вашей <b>поездке #%d</b> поступил запрос на контакт.\n\nОтправитель: %s\nИмя пользователя: @%s\nМаршрут: %s → %s (Дата: %s)\n\nОтветьте, если хотите продолжить.",
	},
	"flow_cancelled": {
		"en": "⚠️ Posting cancelled because you sent a command. Start again when ready.",
		"tr": "⚠️ Komut gönderdiğiniz için ilan ekleme iptal edildi. Hazır olunca tekrar başlayın.",
		"ru": "⚠️ Размещение отменено, так как вы отправили команду. Начните заново, когда будете готовы.",
	},
	"unknown_input": {
		"en": "🤔 I didn't understand that. Use /start to see available commands.",
		"tr": "🤔 Anlayamadım. Komutları görmek için /start kullanın.",
		"ru": "🤔 Я не понял. Используйте /start, чтобы увидеть команды.",
	},
	"not_admin": {
		"en": "Not admin.",
		"tr": "Yetkiniz yok.",
		"ru": "Нет доступа.",
	},
	"contact_button": {
		"en": "📩 Contact owner",
		"tr": "📩 Sahibiyle iletişim",
		"ru": "📩 Связаться с владельцем",
	},
	"deactivate_button": {
		"en": "🚫 Deactivate",
		"tr": "🚫 Kaldır",
		"ru": "🚫 Снять",
	},
}

// Get returns the translation for key, trying langs in order and returning
// empty when the key is unknown in every requested language.
func Get(key string, langs ...string) string {
	byLang, ok := messages[key]
	if !ok {
		return ""
	}
	for _, lang := range langs {
		if lang == "" {
			continue
		}
		if s, ok := byLang[lang]; ok {
			return s
		}
	}
	return ""
}

// LangSource exposes a user's stored language preference.
type LangSource interface {
	Lang(ctx context.Context, tgID int64) (string, error)
}

// Resolver translates message keys for a given user, falling back to the
// configured default language and then to the secondary one.
type Resolver struct {
	users     LangSource
	fallback  string
	secondary string
}

// NewResolver builds a Resolver around a language source.
func NewResolver(users LangSource, fallback, secondary string) *Resolver {
	return &Resolver{users: users, fallback: fallback, secondary: secondary}
}

// UserLang returns the user's effective language code.
func (r *Resolver) UserLang(ctx context.Context, tgID int64) string {
	if r.users != nil {
		if lang, err := r.users.Lang(ctx, tgID); err == nil && lang != "" {
			return lang
		}
	}
	return r.fallback
}

// Text resolves key for the user's language.
func (r *Resolver) Text(ctx context.Context, key string, tgID int64) string {
	return Get(key, r.UserLang(ctx, tgID), r.fallback, r.secondary)
}

// TextIn resolves key for an explicit language code.
func (r *Resolver) TextIn(key, lang string) string {
	return Get(key, lang, r.fallback, r.secondary)
}
