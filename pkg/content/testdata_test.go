package content

const initialDataJSON = `{"comments":{"id":1234,"count":4931},"current_talk":"66","event":"TED2006","language":"en","talks":[{"id":66,"title":"Do schools kill creativity?","speaker_name":"Sir Ken Robinson","speakers":[{"id":69,"firstname":"Ken"}],"tags":["children","creativity","culture"],"video_type":{"id":"1","name":"TED Stage Talk"},"viewed_count":47227110,"recorded_at":"2006-02-25T00:11:00.000+00:00","duration":1164,"ratings":[{"id":7,"name":"Funny","count":19645},{"id":1,"name":"Beautiful","count":4573}],"description":"Has a \"}\" in it: {not json"}]}`

const talkPageHTML = `<!DOCTYPE html>
<html>
<head>
<title>Sir Ken Robinson: Do schools kill creativity? | TED Talk</title>
<script src="/assets/app.js"></script>
<script>window.dataLayer = [];</script>
</head>
<body>
<div data-talk-page></div>
<script>q("talkPage.init", {"el":"[data-talk-page]","__INITIAL_DATA__":` + initialDataJSON + `})
</script>
</body>
</html>`
