package telegram

const msgWelcome = `🕌 <b>أهلاً بك في رحلة الحفظ!</b>

اختبر حفظك لصفحات المصحف، واكسب نقاط الخبرة والألماس، وطوّر مهاراتك، ونافس أصدقاءك في المبارزات.

الأوامر المتاحة:
/quiz — ابدأ اختباراً على صفحة
/store — المتجر
/skills — شجرة المهارات
/quests — المهام اليومية والأسبوعية
/profile — ملفك الشخصي
/duel — تحدّ لاعباً آخر
/review — راجع أخطاءك الأخيرة`

const (
	msgUnknownCommand = "لم أفهم هذا الأمر. جرّب /start لعرض الأوامر المتاحة."
	msgInternalError  = "حدث خطأ ما. حاول مرة أخرى لاحقاً."

	msgPageNotOwned   = "🔒 هذه الصفحة غير مملوكة بعد. يمكنك شراؤها من /store."
	msgNoAttemptsLeft = "⏳ انتهت محاولاتك اليوم ولا تملك نجوم طاقة. عد غداً أو اشترِ نجوماً من المتجر."
	msgNoActiveQuiz   = "لا يوجد اختبار جارٍ. ابدأ واحداً بالأمر /quiz."
	msgPageTooShort   = "تعذّر توليد أسئلة لهذه الصفحة. جرّب صفحة أخرى."

	msgAlreadyOwned      = "لديك هذا العنصر بالفعل."
	msgInsufficientFunds = "💎 رصيدك لا يكفي لهذا الشراء."

	msgNoSkillPoints        = "ليس لديك نقاط مهارة كافية. ارفع مستواك لتكسب المزيد."
	msgSkillAlreadyUnlocked = "هذه المهارة مفتوحة بالفعل."
	msgSkillLocked          = "🔒 افتح المهارة السابقة في الشجرة أولاً."

	msgQuestNotReady = "هذه المهمة لم تكتمل بعد."

	msgAnswerCorrect  = "✅ إجابة صحيحة!"
	msgAnswerForgiven = "🛡️ أخطأت، لكن مهارة غفران الخطأ أنقذتك هذه المرة!"
	msgAnswerWrong    = "❌ إجابة خاطئة."

	msgNotInDuel      = "هذا النزال ليس لك."
	msgDuelUsage      = "للتحدي أرسل: ‎/duel <معرّف اللاعب>"
	msgDuelCreated    = "⚔️ أُرسل التحدي! سيُحسم النزال عندما يُكمل خصمك اختباره."
	msgNoPendingDuels = "لا توجد تحديات بانتظارك."

	msgNoRecentResults = "لا توجد نتائج بعد. ابدأ أول اختبار لك بالأمر /quiz."
	msgNoErrors        = "🎉 لا توجد أخطاء في اختباراتك الأخيرة!"

	msgChooseOrder = "رتّب الكلمات بالضغط عليها بالترتيب الصحيح:"
)
